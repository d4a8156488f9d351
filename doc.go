// Package evidencekit checks and prepares evidence files uploaded by
// practitioners before anything downstream stores or trusts them.
//
// A [Processor] runs every file through the same pipeline:
//
//  1. The declared MIME type is resolved to a category and the content is
//     verified against that type's magic-byte signatures
//     (see [github.com/gobeaver/evidencekit/filevalidator]).
//  2. The size is checked against the category's inclusive ceiling.
//  3. Images are re-encoded into one canonical format with bounded
//     dimensions (see [github.com/gobeaver/evidencekit/normalize]);
//     documents pass through unchanged.
//
// # Basic Usage
//
//	p := evidencekit.NewDefault()
//
//	res, err := p.Process(ctx, data, "image/png", func(pct int) {
//	    fmt.Printf("%d%%\n", pct)
//	})
//	if err != nil {
//	    var e *evidencekit.Error
//	    errors.As(err, &e)
//	    fmt.Println(e.Code, e.Message, e.LocalizedMessage)
//	    return
//	}
//	fmt.Println(res.MIMEType, res.Size(), res.Checksum)
//
// # Errors
//
// Process only ever fails with an [*Error] whose Code is one of
// INVALID_FILE_TYPE, IMAGE_TOO_LARGE, DOCUMENT_TOO_LARGE,
// COMPRESSION_FAILED or PROCESSING_CANCELED. Each error carries an English
// message and a message in the configured secondary locale.
//
// # Configuration
//
// [Config] is loaded from the environment with the BEAVER_ prefix by default:
//
//	BEAVER_EVIDENCEKIT_DOCUMENT_MAX_SIZE=5242880
//	BEAVER_EVIDENCEKIT_IMAGE_MAX_DIMENSION=1920
//	BEAVER_EVIDENCEKIT_SECONDARY_LOCALE=es
//
// Use [WithPrefix] for a different prefix.
//
// # Batches
//
// [Processor.ProcessBatch] runs independent files with bounded concurrency
// and returns one result per file.
package evidencekit
