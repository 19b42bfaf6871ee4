// Package refdata loads the static airport and college reference sets. The
// sets are read once at process start and shared read-only by all concurrent
// validations.
package refdata

import (
	"bufio"
	_ "embed"
	"fmt"
	"strings"

	"github.com/igetback/shuttle-api/internal/ports/out/refdata"
)

//go:embed airports.txt
var airportsData string

//go:embed colleges.txt
var collegesData string

// StaticProvider implements refdata.Provider over the embedded data files.
type StaticProvider struct {
	airports refdata.Set
	colleges refdata.Set
}

// Load parses the embedded reference files.
func Load() (*StaticProvider, error) {
	airports, err := parseLines(airportsData)
	if err != nil {
		return nil, fmt.Errorf("parse airports: %w", err)
	}
	colleges, err := parseLines(collegesData)
	if err != nil {
		return nil, fmt.Errorf("parse colleges: %w", err)
	}
	return &StaticProvider{
		airports: refdata.NewSet(airports),
		colleges: refdata.NewSet(colleges),
	}, nil
}

func (p *StaticProvider) AirportCodes() refdata.Set { return p.airports }
func (p *StaticProvider) Colleges() refdata.Set     { return p.colleges }

// parseLines reads one value per line, skipping blanks and # comments.
func parseLines(data string) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(strings.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no entries found")
	}
	return out, nil
}
