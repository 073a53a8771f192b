// This file is part of Relay64.
//
// Relay64 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Relay64 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Relay64.  If not, see <https://www.gnu.org/licenses/>.

package paths_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/relay64/relay64/paths"
	"github.com/relay64/relay64/test"
)

func TestResourcePath(t *testing.T) {
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	defer os.Chdir(wd)

	// a local .relay64 directory takes precedence over the user's config
	// directory
	test.DemandSuccess(t, os.Chdir(t.TempDir()))
	test.DemandSuccess(t, os.Mkdir(".relay64", 0o700))

	pth, err := paths.ResourcePath("graphs", "shadow.dot")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".relay64", "graphs", "shadow.dot"))

	info, err := os.Stat(filepath.Join(".relay64", "graphs"))
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, info.IsDir())

	pth, err = paths.ResourcePath("", "preferences")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".relay64", "preferences"))
}

func TestUniqueFilename(t *testing.T) {
	fn := paths.UniqueFilename("shadow", "scenario", "dot")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "shadow_scenario_"))
	test.ExpectSuccess(t, strings.HasSuffix(fn, ".dot"))

	fn = paths.UniqueFilename("shadow", "", "")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "shadow_2"))
}
