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

// Command ncview is a command-line explorer for gridded NetCDF simulation
// output.
package main

import (
	"fmt"
	"os"

	"github.com/scigrid/ncview/ncviewutil"
)

func main() {
	if err := ncviewutil.Root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗", err)
		os.Exit(1)
	}
}
