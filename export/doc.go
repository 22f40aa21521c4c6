// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package export renders ledger tables for download.

# CSV

	body := export.CSV(export.ParticipantFields, export.ParticipantRecords(ps))

A cell is wrapped in double quotes, with inner quotes doubled, only when it
contains a comma, a double quote or a newline. Lines are separated by "\n"
and the output has no trailing newline.

# Workbooks

XLSX writes the same fields and rows into one sheet, for ?format=xlsx downloads.
*/
package export
