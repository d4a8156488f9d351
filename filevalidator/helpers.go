package filevalidator

import (
	"fmt"
	"math"
)

// FormatSizeReadable converts a size in bytes to a human-readable string
func FormatSizeReadable(size int64) string {
	if size < KB {
		return fmt.Sprintf("%d B", size)
	}
	if size < MB {
		return formatUnit(size, KB, "KB")
	}
	if size < GB {
		return formatUnit(size, MB, "MB")
	}
	return formatUnit(size, GB, "GB")
}

func formatUnit(size, unit int64, suffix string) string {
	value := float64(size) / float64(unit)
	// Round to 1 decimal place properly
	rounded := math.Round(value*10) / 10
	if rounded == float64(int64(rounded)) {
		return fmt.Sprintf("%.0f %s", rounded, suffix)
	}
	return fmt.Sprintf("%.1f %s", rounded, suffix)
}

// IsImage checks if a category is the image category
func IsImage(category Category) bool {
	return category == CategoryImage
}

// IsDocument checks if a category is the document category
func IsDocument(category Category) bool {
	return category == CategoryDocument
}
