/*
Copyright © 2024 the NCView authors.
This file is part of NCView.

NCView is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

NCView is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with NCView.  If not, see <http://www.gnu.org/licenses/>.
*/

package ncview

import (
	"fmt"
	"math"
	"strings"
)

// Render formats the table as fixed-width text: one row per sample level
// with its cell counts, and per field an error column (scientific notation)
// and an order column (3 decimals). Unresolvable errors render as "N/A" and
// undefined orders render blank.
func (t *Table) Render() string {
	var b strings.Builder

	type colWidths struct{ err, ord int }
	widths := make([]colWidths, len(t.Fields))
	errLabels := make([]string, len(t.Fields))
	ordLabels := make([]string, len(t.Fields))
	for i, field := range t.Fields {
		short := shortLabel(field)
		errLabels[i] = "error " + short
		ordLabels[i] = "order " + short
		widths[i] = colWidths{err: maxInt(15, len(errLabels[i])), ord: maxInt(8, len(ordLabels[i]))}
	}

	var header strings.Builder
	if len(t.Dims) == 1 {
		header.WriteString(fmt.Sprintf("%8s", "cells x"))
	} else {
		header.WriteString(fmt.Sprintf("%8s %8s", "cells y", "cells x"))
	}
	for i := range t.Fields {
		header.WriteString(fmt.Sprintf(" %*s %*s", widths[i].err, errLabels[i], widths[i].ord, ordLabels[i]))
	}
	b.WriteString(header.String())
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", len([]rune(header.String()))))
	b.WriteByte('\n')

	for li, level := range t.Levels {
		if len(t.Dims) == 1 {
			b.WriteString(fmt.Sprintf("%8d", level.Sizes[0]))
		} else {
			b.WriteString(fmt.Sprintf("%8d %8d", level.Sizes[0], level.Sizes[1]))
		}
		for i, field := range t.Fields {
			e := t.Errors[field][li]
			if math.IsNaN(e) {
				b.WriteString(fmt.Sprintf(" %*s", widths[i].err, "N/A"))
			} else {
				b.WriteString(fmt.Sprintf(" %*.6e", widths[i].err, e))
			}
			o := t.Orders[field][li]
			if math.IsNaN(o) {
				b.WriteString(fmt.Sprintf(" %*s", widths[i].ord, ""))
			} else {
				b.WriteString(fmt.Sprintf(" %*.3f", widths[i].ord, o))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// shortLabel truncates long field names so expression columns stay readable.
func shortLabel(field string) string {
	r := []rune(field)
	if len(r) <= 10 {
		return field
	}
	return string(r[:9]) + "…"
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
