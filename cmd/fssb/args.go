//
// Copyright 2026 The FSSB Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package main

import "fmt"

var errMissingSeparator = fmt.Errorf("fssb: missing mandatory '--' separator before the program to run")
var errMissingProgram = fmt.Errorf("fssb: missing program to run after '--'")

// splitArgs finds the mandatory "--" separator in the raw argument list
// (argv[1:]) and splits it into the flags fssb itself parses and the
// program (with its own args) to run under the sandbox. Only the first
// "--" counts; everything after it, including further "--" tokens, belongs
// to the child's argument list untouched.
func splitArgs(args []string) (flags []string, program []string, err error) {
	for i, a := range args {
		if a == "--" {
			if i == len(args)-1 {
				return nil, nil, errMissingProgram
			}
			return args[:i], args[i+1:], nil
		}
	}
	return nil, nil, errMissingSeparator
}

// isSoleHelpFlag reports whether flags is exactly the "-h" or "--help"
// flag and nothing else, the only combination in which fssb honors it
// (spec: "-h" must be the sole flag).
func isSoleHelpFlag(flags []string) bool {
	return len(flags) == 1 && (flags[0] == "-h" || flags[0] == "--help")
}
