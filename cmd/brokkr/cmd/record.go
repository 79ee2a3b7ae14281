package cmd

import (
	"fmt"

	"github.com/ssargent/brokkr/pkg/codec"
)

// recordKind names the three record images the tooling handles on disk.
type recordKind string

const (
	kindHeader  recordKind = "header"
	kindDevice  recordKind = "device"
	kindManager recordKind = "manager"
)

// detectRecord resolves which record kind an image holds, from the --record
// flag when given, otherwise from the exact file size.
func detectRecord(flag string, size int) (recordKind, error) {
	switch flag {
	case "header", "device", "manager":
		return recordKind(flag), nil
	case "":
	default:
		return "", fmt.Errorf("unknown record kind %q (want header, device or manager)", flag)
	}
	switch size {
	case codec.FileHeaderSize:
		return kindHeader, nil
	case codec.DeviceDescriptorSize:
		return kindDevice, nil
	case codec.DeviceManagerSize:
		return kindManager, nil
	}
	return "", fmt.Errorf(
		"cannot tell record kind from a %d-byte file (header is %d bytes, device %d, manager %d); use --record",
		size, codec.FileHeaderSize, codec.DeviceDescriptorSize, codec.DeviceManagerSize)
}
