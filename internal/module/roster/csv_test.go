package roster

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCSV_Layout(t *testing.T) {
	content := BuildCSV(sampleTeams())
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	require.Len(t, lines, 6)

	// Header is unquoted; every data field is quoted.
	assert.Equal(t, "Team Name,Category,Member Name,Email,Phone,College,Registration Date", lines[0])
	assert.Equal(t, `"Grid Breakers","web","Asha Rao","asha@example.com","9876543210","NIT Trichy","2025-11-01 10:30:00"`, lines[1])

	// Second member carries only its own fields.
	assert.Equal(t, `"","","Ravi Kumar","ravi@example.com","9876500000","IIT Madras",""`, lines[2])

	// Blank row after every team, the last one included.
	assert.Equal(t, `"","","","","","",""`, lines[3])
	assert.Equal(t, `"Meter Minds","ai-ml","Priya Singh","priya@example.com","9876511111","BITS Pilani","2025-11-02 09:00:00"`, lines[4])
	assert.Equal(t, `"","","","","","",""`, lines[5])
}

func TestBuildCSV_SingleTeamTrailingBlankRow(t *testing.T) {
	content := BuildCSV(sampleTeams()[:1])
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `"","","","","","",""`, lines[3])
}

func TestBuildCSV_EscapesQuotes(t *testing.T) {
	teams := sampleTeams()[:1]
	teams[0].TeamName = `Team "Alpha", Inc`

	content := BuildCSV(teams)
	assert.Contains(t, string(content), `"Team ""Alpha"", Inc"`)
}

func TestService_Export(t *testing.T) {
	repo := &fakeRepo{teams: sampleTeams()}
	s := newTestService(repo)
	_, err := s.Refresh(context.Background())
	require.NoError(t, err)

	filename, content, err := s.Export(context.Background(), "")
	require.NoError(t, err)

	wantName := "hackathon-registrations-" + time.Now().Format("2006-01-02") + ".csv"
	assert.Equal(t, wantName, filename)
	assert.Contains(t, string(content), "Grid Breakers")
	assert.Contains(t, string(content), "Meter Minds")
}

func TestService_ExportRespectsFilter(t *testing.T) {
	repo := &fakeRepo{teams: sampleTeams()}
	s := newTestService(repo)
	_, err := s.Refresh(context.Background())
	require.NoError(t, err)

	_, content, err := s.Export(context.Background(), "grid")
	require.NoError(t, err)
	assert.Contains(t, string(content), "Grid Breakers")
	assert.NotContains(t, string(content), "Meter Minds")
}

func TestService_ExportEmptyRoster(t *testing.T) {
	s := newTestService(&fakeRepo{})

	_, _, err := s.Export(context.Background(), "")
	assert.ErrorIs(t, err, ErrNothingToExport)
}

func TestService_ExportNoFilterMatch(t *testing.T) {
	repo := &fakeRepo{teams: sampleTeams()}
	s := newTestService(repo)
	_, err := s.Refresh(context.Background())
	require.NoError(t, err)

	_, _, err = s.Export(context.Background(), "zzz")
	assert.ErrorIs(t, err, ErrNothingToExport)
}
