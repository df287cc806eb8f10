// SPDX-License-Identifier: MIT

// Command butterfly runs the butterfly transform on a generated scenario and
// compares it with the direct sum.
package main

import (
	"fmt"
	"os"

	"k8s.io/klog/v2"
)

func main() {
	defer klog.Flush()

	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
