// SPDX-License-Identifier: MPL-2.0

package main

import cmd "spheremesh/cmd/spheremesh"

func main() {
	cmd.Execute()
}
