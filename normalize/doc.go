// Package normalize re-encodes evidence images into a single canonical format
// with bounded dimensions and a size target.
//
// A Normalizer guards against decompression bombs from the header, decodes,
// flattens transparency onto white, downscales so the longest side fits
// [Options.MaxDimension] and encodes as JPEG. When the first encode is larger
// than [Options.TargetSize] it retries at lower quality and keeps the
// smallest output.
//
//	n := normalize.New(normalize.WithOptions(normalize.DefaultOptions()))
//	out, stats, err := n.Normalize(ctx, data, func(p int) { fmt.Println(p) })
//
// Inputs that are already small canonical JPEGs within the dimension bound
// are returned unchanged once a full decode has verified them.
package normalize
