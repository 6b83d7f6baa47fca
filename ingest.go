package main

import (
	"fmt"
	"log"
	"sync"

	"github.com/pivolan/telemetry_insights/domain/models"
	"github.com/pivolan/telemetry_insights/provider"
)

// analysisSession is everything the bot keeps per chat after an upload.
type analysisSession struct {
	Dataset  *Dataset
	Provider provider.DataProvider
	Stats    []models.ColumnStats
	Roles    map[string]models.ColumnRole
}

var (
	sessionsMu sync.Mutex
	sessions   = map[int64]*analysisSession{}
)

func setSession(chatID int64, s *analysisSession) {
	sessionsMu.Lock()
	defer sessionsMu.Unlock()
	sessions[chatID] = s
}

func getSession(chatID int64) (*analysisSession, bool) {
	sessionsMu.Lock()
	defer sessionsMu.Unlock()
	s, ok := sessions[chatID]
	return s, ok
}

// ingestFile unpacks an upload if needed, parses it and builds the
// analytics provider for it.
func ingestFile(filePath string) (*analysisSession, error) {
	unpackedFilePath, err := unpackArchive(filePath)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", filePath, err)
	}
	if unpackedFilePath != "" {
		filePath = unpackedFilePath
	}

	ds, err := LoadCSVFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filePath, err)
	}
	log.Printf("ingested %s: %d columns, %d rows", ds.Name, len(ds.Columns), len(ds.Rows))

	session := &analysisSession{Dataset: ds}
	p := provider.NewDataProvider(ds.Rows, nil)
	session.Provider = p
	if real, ok := p.(*provider.RealDataProvider); ok {
		session.Stats = real.ColumnStats()
		session.Roles = real.ColumnRoles()
	}
	return session, nil
}

// statsByName reindexes per-column stats for the warehouse export.
func (s *analysisSession) statsByName() map[string]models.ColumnStats {
	out := make(map[string]models.ColumnStats, len(s.Stats))
	for _, cs := range s.Stats {
		out[cs.Name] = cs
	}
	return out
}
