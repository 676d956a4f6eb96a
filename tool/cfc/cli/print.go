/*
Copyright 2018 Gravitational, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/gravitational/trace"
)

// PrintError prints err's user-facing message to stderr in red.
func PrintError(err error) {
	fmt.Fprint(os.Stderr, color.RedString("[ERROR]: %v\n", trace.UserMessage(err)))
}
