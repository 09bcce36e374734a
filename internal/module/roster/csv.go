package roster

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nxzen/hackathon-server/internal/module/registration"
)

// csvHeader is emitted unquoted; data rows quote every field so names
// and colleges containing commas survive naive spreadsheet imports.
const csvHeader = "Team Name,Category,Member Name,Email,Phone,College,Registration Date"

// Export renders the filtered roster as a CSV document and returns the
// suggested filename alongside the content. Archiving, when configured,
// happens in the background and never fails the export.
func (s *Service) Export(ctx context.Context, query string) (filename string, content []byte, err error) {
	teams := s.Filter(query)
	if len(teams) == 0 {
		if s.metrics != nil {
			s.metrics.RecordRosterExport("empty")
		}
		return "", nil, ErrNothingToExport
	}

	content = BuildCSV(teams)
	filename = fmt.Sprintf("hackathon-registrations-%s.csv", time.Now().Format("2006-01-02"))

	if s.metrics != nil {
		s.metrics.RecordRosterExport("ok")
	}
	s.logger.Info("roster exported",
		zap.Int("teams", len(teams)),
		zap.String("filename", filename))

	if s.archiver != nil {
		s.archiveAsync(filename, content)
	}
	return filename, content, nil
}

// BuildCSV renders teams in the export layout: team-level fields appear
// on the first member row only, and every team's member rows are
// followed by a blank row, the last team included.
func BuildCSV(teams []*registration.Team) []byte {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')

	for _, t := range teams {
		registered := t.CreatedAt.Format("2006-01-02 15:04:05")
		for j, m := range t.Members {
			if j == 0 {
				writeRow(&b, t.TeamName, t.Category, m.Name, m.Email, m.Phone, m.College, registered)
			} else {
				writeRow(&b, "", "", m.Name, m.Email, m.Phone, m.College, "")
			}
		}
		writeRow(&b, "", "", "", "", "", "", "")
	}
	return []byte(b.String())
}

func writeRow(b *strings.Builder, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
