package cmd

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/slotlab/staticvec/datarecording"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve recorded benchmark results over HTTP.",
	Run: func(cmd *cobra.Command, args []string) {
		dbName, _ := cmd.Flags().GetString("db")
		port, _ := cmd.Flags().GetInt("port")
		noBrowser, _ := cmd.Flags().GetBool("no-browser")

		serveResults(dbName, port, noBrowser)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("db", envOrDefault("SVBENCH_DB", "svbench"),
		"results database name to serve")
	serveCmd.Flags().Int("port", 0,
		"port to listen on; 0 picks a random port")
	serveCmd.Flags().Bool("no-browser", false,
		"do not open the browser")
}

type resultsServer struct {
	reader datarecording.DataReader
}

func serveResults(dbName string, port int, noBrowser bool) {
	reader := datarecording.NewReader(dbName)
	reader.MapTable("results", BenchResult{})
	reader.MapTable("process_stats", ProcessStats{})

	s := &resultsServer{reader: reader}

	r := mux.NewRouter()
	r.HandleFunc("/api/tables", s.listTables)
	r.HandleFunc("/api/results", s.listResults)
	r.HandleFunc("/api/process_stats", s.listProcessStats)

	listener, err := net.Listen("tcp", ":"+strconv.Itoa(port))
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d/api/results",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Serving benchmark results at %s\n", url)

	if !noBrowser {
		// Best effort; headless environments have no browser.
		_ = browser.OpenURL(url)
	}

	err = http.Serve(listener, r)
	dieOnErr(err)
}

func (s *resultsServer) listTables(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.reader.ListTables())
}

func (s *resultsServer) listResults(w http.ResponseWriter, r *http.Request) {
	s.queryTable(w, r, "results", "NsPerOp ASC")
}

func (s *resultsServer) listProcessStats(
	w http.ResponseWriter,
	r *http.Request,
) {
	s.queryTable(w, r, "process_stats", "")
}

func (s *resultsServer) queryTable(
	w http.ResponseWriter,
	r *http.Request,
	table string,
	orderBy string,
) {
	params := datarecording.QueryParams{OrderBy: orderBy}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		params.Limit, _ = strconv.Atoi(limit)
	}

	if offset := r.URL.Query().Get("offset"); offset != "" {
		params.Offset, _ = strconv.Atoi(offset)
	}

	results, total, err := s.reader.Query(r.Context(), table, params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, map[string]any{
		"total":   total,
		"entries": results,
	})
}

func (s *resultsServer) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
