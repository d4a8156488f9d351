package evidencekit

import (
	"context"
	"testing"
)

func BenchmarkProcess(b *testing.B) {
	ctx := context.Background()
	inputs := map[string]struct {
		data     []byte
		declared string
	}{
		"document":      {pdfOfSize(256 * 1024), "application/pdf"},
		"png":           {pngData(b, 640, 480), "image/png"},
		"jpeg":          {jpegData(b, 640, 480), "image/jpeg"},
		"png_downscale": {pngData(b, 2400, 1600), "image/png"},
	}

	configs := map[string]*Config{
		"default": DefaultConfig(),
		"sha256": func() *Config {
			cfg := DefaultConfig()
			cfg.ChecksumAlgorithm = string(ChecksumSHA256)
			return cfg
		}(),
		"no_fast_path": func() *Config {
			cfg := DefaultConfig()
			cfg.FastPathEnabled = false
			return cfg
		}(),
	}

	for cname, cfg := range configs {
		p, err := New(cfg)
		if err != nil {
			b.Fatalf("Failed to create processor: %v", err)
		}
		for iname, in := range inputs {
			b.Run(cname+"/"+iname, func(b *testing.B) {
				b.SetBytes(int64(len(in.data)))
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if _, err := p.Process(ctx, in.data, in.declared, nil); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkConfigCreation(b *testing.B) {
	for i := 0; i < b.N; i++ {
		cfg := DefaultConfig()
		if err := cfg.Validate(); err != nil {
			b.Fatal(err)
		}
	}
}
