// Package filevalidator decides whether an evidence file is what its uploader
// claims it is, before anything downstream trusts or stores it.
//
// FileValidator is part of [evidencekit] but can be used on its own.
//
// [evidencekit]: https://github.com/gobeaver/evidencekit
//
// # Two-phase check
//
// A declared MIME type is never trusted. Validation first resolves the
// declared type to a [Category] through the [SignatureRegistry], then
// verifies the content against that type's [MediaSignature]s byte for byte:
//
//	v := filevalidator.NewDefault()
//	verdict := v.Validate(data, "image/jpeg")
//	if !verdict.IsValid {
//	    // verdict.Err.Type is ErrorTypeMIME, ErrorTypeCategory or ErrorTypeSignature
//	}
//
// Unknown declared types fail closed. A buffer shorter than a rule fails the
// same way a wrong byte does, which covers empty and truncated files.
//
// # Signatures
//
// Each signature is a list of [ByteRule]s that must all match exactly.
// Container formats (RIFF and friends) declare both the wrapper at offset 0
// and the inner marker:
//
//	{Name: "webp", Category: CategoryImage, MIMECandidates: []string{"image/webp"},
//	 Rules: []ByteRule{{0, []byte("RIFF")}, {8, []byte("WEBP")}}}
//
// [NewSignatureRegistry] rejects incomplete signatures, including ones that
// only check a container wrapper.
//
// # Size policy
//
// [SizePolicy] holds per-category inclusive ceilings and the category
// allowlist. It runs after type validation:
//
//	if err := v.Policy().CheckSize(verdict.Category, int64(len(data))); err != nil {
//	    // err is a *ValidationError with Size and Limit set
//	}
//
// # Builder
//
//	v, err := filevalidator.NewBuilder().
//	    Allow(filevalidator.CategoryImage, filevalidator.CategoryDocument).
//	    MaxDocumentSize(5 * filevalidator.MB).
//	    Build()
package filevalidator
