package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"google.golang.org/api/iterator"

	"crosswarped.com/xwsolve"
	"crosswarped.com/xwsolve/pkg/puzzle"
)

type SolveGridRequest struct {
	Structure      []string `json:"structure"`
	Words          []string `json:"words"`
	WordScope      string   `json:"wordScope"`
	IncludeObscure bool     `json:"includeObscure"`
}

type SolveGridResponse struct {
	Success bool   `json:"success"`
	Grid    string `json:"grid,omitempty"`
	Error   string `json:"error,omitempty"`
}

func getWords(ctx context.Context, scope string, includeObscure bool) ([]string, error) {
	client, err := bigquery.NewClient(ctx, viper.GetString("bigquery_project"))
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	obscureValues := []string{"false"}
	if includeObscure {
		obscureValues = append(obscureValues, "true")
	}
	query := fmt.Sprintf("SELECT word_key FROM `%s.FirestoreQuery.all_words` WHERE scope = %q AND obscure IN (%s)",
		viper.GetString("bigquery_project"), scope, strings.Join(obscureValues, ","))
	q := client.Query(query)
	q.Location = "US"

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}

	var words []string
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}

		word, ok := row[0].(string)
		if !ok {
			return nil, fmt.Errorf("row[0] is not a string: %v", row[0])
		}
		words = append(words, word)
	}
	return words, nil
}

func execute(ctx context.Context, req SolveGridRequest) (string, error) {
	if len(req.Structure) == 0 {
		return "", fmt.Errorf("structure must not be empty")
	}

	words := lo.Map(req.Words, func(w string, _ int) string {
		return strings.ToUpper(w)
	})

	if req.WordScope != "" {
		scopeWords, err := getWords(ctx, req.WordScope, req.IncludeObscure)
		if err != nil {
			return "", fmt.Errorf("getWords: %w", err)
		}
		log.Info().Str("scope", req.WordScope).Int("words", len(scopeWords)).Msg("loaded scoped vocabulary")
		words = append(words, scopeWords...)
	}

	if len(words) == 0 {
		return "", fmt.Errorf("vocabulary must not be empty")
	}

	pzl, err := puzzle.New(req.Structure, words)
	if err != nil {
		return "", fmt.Errorf("puzzle.New: %w", err)
	}

	timeout := 1 * time.Minute
	if deadline, ok := ctx.Deadline(); ok {
		// Leave headroom to marshal the response before the function is killed.
		timeout = time.Until(deadline) - 5*time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	assignment, ok := xwsolve.New(pzl).Solve(ctx)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return xwsolve.NewGrid(pzl, assignment).Repr(), nil
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func solveGrid(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, `{"success": false, "error": "Method %s not allowed"}`, r.Method)
		return
	}

	var req SolveGridRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error().Err(err).Msg("parsing JSON body")
		w.WriteHeader(http.StatusBadRequest)
		response := SolveGridResponse{
			Success: false,
			Error:   fmt.Sprintf("Invalid JSON: %v", err),
		}
		json.NewEncoder(w).Encode(response)
		return
	}

	grid, err := execute(r.Context(), req)

	response := SolveGridResponse{
		Success: err == nil,
		Grid:    grid,
	}

	if err != nil {
		response.Error = err.Error()
	} else if grid == "" {
		response.Error = "No solution exists for the given structure and vocabulary"
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error().Err(err).Msg("marshaling response")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"success": false, "error": "Internal server error"}`)
		return
	}
}

func main() {
	viper.SetEnvPrefix("xwsolve")
	viper.AutomaticEnv()
	viper.SetDefault("port", "8080")
	viper.SetDefault("bigquery_project", "xword-x")

	funcframework.RegisterHTTPFunction("/solve-grid", solveGrid)

	hostname := ""
	if viper.GetBool("local_only") {
		hostname = "127.0.0.1"
	}
	if err := funcframework.StartHostPort(hostname, viper.GetString("port")); err != nil {
		log.Fatal().Err(err).Msg("funcframework.StartHostPort")
	}
}
