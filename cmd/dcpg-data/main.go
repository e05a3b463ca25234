// Copyright 2018 The deepcpg2 Authors. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Command dcpg-data inspects and builds the inputs of the deepcpg2
// pipelines: CpG position stores, methylation call files and annotation BED
// files.  Run "dcpg-data help" for the list of subcommands.
package main

import "github.com/cangermueller/deepcpg2/cmd/dcpg-data/cmd"

func main() {
	cmd.Run()
}
