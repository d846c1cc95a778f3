package internal

import (
	"embed"
	"encoding/json"
	"fmt"
	"greeter-proxy/repositories"
	"html/template"
	"net/http"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

//go:embed inspect.html
var templatesFS embed.FS

type InspectRow struct {
	Key    string
	Kind   string
	Detail string
}

type RowMapper func(key string, val []byte) InspectRow
type StatsProvider func() map[string]any

type PageData struct {
	Prefix string
	Items  []InspectRow
	Stats  map[string]any
}

// NewDebugHandler renders the Badger key space as an HTML table.
// The optional "prefix" query parameter narrows the scan.
func NewDebugHandler(db *badger.DB, endpoint string, mapper RowMapper, statsProvider StatsProvider) http.Handler {
	mux := http.NewServeMux()
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))

	if mapper == nil {
		mapper = DefaultMapper
	}

	mux.HandleFunc(endpoint, func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")

		data := PageData{
			Prefix: prefix,
			Stats:  make(map[string]any),
		}
		if statsProvider != nil {
			data.Stats = statsProvider()
		}

		items, err := Scan(db, prefix, mapper)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data.Items = items

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	})
	return mux
}

// Scan maps every key under prefix, in key order.
func Scan(db *badger.DB, prefix string, mapper RowMapper) ([]InspectRow, error) {
	if mapper == nil {
		mapper = DefaultMapper
	}
	var rows []InspectRow
	err := db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				rows = append(rows, mapper(string(item.KeyCopy(nil)), val))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return rows, err
}

// StartDebugServer serves the inspector in the background on every interface.
func StartDebugServer(db *badger.DB, port int, endpoint string, mapper RowMapper, statsProvider StatsProvider) *http.Server {
	server := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", port),
		Handler: NewDebugHandler(db, endpoint, mapper, statsProvider),
	}
	go func() {
		_ = server.ListenAndServe()
	}()
	return server
}

// DefaultMapper knows the users table, its id index and the system state table.
func DefaultMapper(key string, val []byte) InspectRow {
	row := InspectRow{Key: key, Kind: "RAW", Detail: fmt.Sprintf("Size: %d bytes", len(val))}

	switch {
	case strings.HasPrefix(key, "user:"):
		row.Kind = "USER"
		var disk repositories.DiskUser
		if err := json.Unmarshal(val, &disk); err != nil {
			row.Detail = "undecodable: " + err.Error()
			return row
		}
		row.Detail = fmt.Sprintf("%s %s (id %s)", disk.Role, disk.Name, disk.ID)
	case strings.HasPrefix(key, "user_id:"):
		row.Kind = "INDEX"
		row.Detail = "-> " + string(val)
	case strings.HasPrefix(key, "state:"):
		row.Kind = "STATE"
		row.Detail = string(val)
	}
	return row
}
