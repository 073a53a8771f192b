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


package regression

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/relay64/relay64/database"
	"github.com/relay64/relay64/glapi/glrecord"
	"github.com/relay64/relay64/logger"
	"github.com/relay64/relay64/random"
	"github.com/relay64/relay64/relay"
	"github.com/relay64/relay64/scenario"
	"github.com/relay64/relay64/shadow"
)

const digestEntryType = "digest"

const (
	digestFieldScenario int = iota
	digestFieldFrames
	digestFieldDigest
	digestFieldForwarded
	digestFieldSkipped
	digestFieldNotes
	numDigestFields
)

// DigestRegression is the simplest regression type. It plays a scenario for
// a set number of frames and records the payload digest and the driver call
// totals.
type DigestRegression struct {
	// path to the scenario file
	Scenario string

	// number of frames to play. zero means the number of frames in the
	// scenario file
	Frames int

	Notes string

	digest string
	total  shadow.Counter
}

func deserialiseDigestEntry(fields database.SerialisedEntry) (database.Entry, error) {
	if len(fields) != numDigestFields {
		return nil, fmt.Errorf("digest: wrong number of fields (%d)", len(fields))
	}

	reg := &DigestRegression{
		Scenario: fields[digestFieldScenario],
		digest:   fields[digestFieldDigest],
		Notes:    fields[digestFieldNotes],
	}

	var err error

	reg.Frames, err = strconv.Atoi(fields[digestFieldFrames])
	if err != nil {
		return nil, fmt.Errorf("digest: invalid frames field [%s]", fields[digestFieldFrames])
	}
	reg.total.Forwarded, err = strconv.ParseUint(fields[digestFieldForwarded], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("digest: invalid forwarded field [%s]", fields[digestFieldForwarded])
	}
	reg.total.Skipped, err = strconv.ParseUint(fields[digestFieldSkipped], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("digest: invalid skipped field [%s]", fields[digestFieldSkipped])
	}

	return reg, nil
}

// EntryType implements the database.Entry interface.
func (reg DigestRegression) EntryType() string {
	return digestEntryType
}

// Serialise implements the database.Entry interface.
func (reg *DigestRegression) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
		reg.Scenario,
		strconv.Itoa(reg.Frames),
		reg.digest,
		strconv.FormatUint(reg.total.Forwarded, 10),
		strconv.FormatUint(reg.total.Skipped, 10),
		reg.Notes,
	}, nil
}

// CleanUp implements the database.Entry interface.
func (reg DigestRegression) CleanUp() error {
	// no cleanup necessary
	return nil
}

func (reg DigestRegression) String() string {
	s := strings.Builder{}
	s.WriteString(filepath.Base(reg.Scenario))
	if reg.Frames > 0 {
		s.WriteString(fmt.Sprintf(" [%d frames]", reg.Frames))
	}
	if reg.Notes != "" {
		s.WriteString(fmt.Sprintf(" [%s]", reg.Notes))
	}
	return s.String()
}

// Digest returns the payload digest recorded for the regression.
func (reg DigestRegression) Digest() string {
	return reg.digest
}

func (reg *DigestRegression) regress(ctx context.Context, newRegression bool, output io.Writer, msg string, prefs *relay.Preferences) (bool, string, error) {
	io.WriteString(output, msg)

	sc, err := scenario.Load(reg.Scenario)
	if err != nil {
		return false, "", err
	}
	if reg.Frames > 0 {
		sc.Frames = reg.Frames
	}

	// payloads must be the same every time
	rnd := random.NewRandom()
	rnd.ZeroSeed = true

	rec := glrecord.NewRecorder()
	fe := relay.NewHeadless(rec.ProcAddress, logger.Deny)

	report, err := scenario.Run(ctx, sc, prefs, rec, fe, scenario.Options{Random: rnd})
	if err != nil {
		return false, "", err
	}

	if newRegression {
		reg.digest = report.RenderDigest
		reg.total = report.Total
		return true, "", nil
	}

	if reg.digest != report.RenderDigest {
		return false, fmt.Sprintf("digest mismatch: %s != %s", report.RenderDigest, reg.digest), nil
	}
	if reg.total != report.Total {
		return false, fmt.Sprintf("driver calls differ: %s != %s", report.Total, reg.total), nil
	}

	return true, "", nil
}
