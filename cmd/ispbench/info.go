// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-isp/hwy"
	"github.com/ajroetker/go-isp/isp"
)

func newBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List the available pipeline backends",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range isp.BackendNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the detected vector target and the default sample format",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			f := isp.DefaultFormat()
			fmt.Fprintf(out, "target:      %s (%d-byte vectors)\n", hwy.CurrentName(), hwy.CurrentWidth())
			fmt.Fprintf(out, "lanes:       uint16=%d uint32=%d int64=%d\n",
				hwy.MaxLanes[uint16](), hwy.MaxLanes[uint32](), hwy.MaxLanes[int64]())
			fmt.Fprintf(out, "GOMAXPROCS:  %d\n", runtime.GOMAXPROCS(0))
			fmt.Fprintf(out, "samples:     U(%d,0), max %d\n", f.SampleBits, f.MaxSample())
			fmt.Fprintf(out, "gains:       U(%d,%d)\n", f.GainIntBits, f.GainFracBits)
			fmt.Fprintf(out, "working:     U(%d,%d)\n", f.SampleBits+f.GainIntBits, f.FracBits)
		},
	}
}
