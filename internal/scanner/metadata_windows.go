//go:build windows

package scanner

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// displayNameFromMetadata reads the embedded version resource of an
// executable and returns its FileDescription or ProductName. Returns false
// when the binary carries no usable version resource.
func displayNameFromMetadata(path string) (string, bool) {
	size, err := windows.GetFileVersionInfoSize(path, nil)
	if err != nil || size == 0 {
		return "", false
	}

	block := make([]byte, size)
	if err := windows.GetFileVersionInfo(path, 0, size, unsafe.Pointer(&block[0])); err != nil {
		return "", false
	}

	type langCodepage struct {
		Lang     uint16
		Codepage uint16
	}

	var transPtr unsafe.Pointer
	var transLen uint32
	err = windows.VerQueryValue(unsafe.Pointer(&block[0]), `\VarFileInfo\Translation`, &transPtr, &transLen)
	if err != nil || transLen < uint32(unsafe.Sizeof(langCodepage{})) {
		return "", false
	}
	translations := unsafe.Slice((*langCodepage)(transPtr), transLen/uint32(unsafe.Sizeof(langCodepage{})))

	for _, tr := range translations {
		for _, key := range []string{"FileDescription", "ProductName"} {
			query := fmt.Sprintf(`\StringFileInfo\%04x%04x\%s`, tr.Lang, tr.Codepage, key)
			var valPtr unsafe.Pointer
			var valLen uint32
			if err := windows.VerQueryValue(unsafe.Pointer(&block[0]), query, &valPtr, &valLen); err != nil || valLen == 0 {
				continue
			}
			value := windows.UTF16ToString(unsafe.Slice((*uint16)(valPtr), valLen))
			if value != "" {
				return value, true
			}
		}
	}
	return "", false
}
