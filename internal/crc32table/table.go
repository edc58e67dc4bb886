// Package crc32table exposes the 256-entry CRC32 table used by the
// ZipCrypto key schedule.
package crc32table

import "hash/crc32"

// Table holds T[i] for the ZIP polynomial 0xEDB88320. The key schedule
// never applies the running CRC's init/final inversion, only its table
// lookups, so stdlib's IEEE table (built from the same reversed
// polynomial) is bit-identical to what ZipCrypto expects.
var Table = crc32.IEEETable
