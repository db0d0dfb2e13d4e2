package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iwvelando/oreha-calculator/internal/config"
	"github.com/iwvelando/oreha-calculator/internal/market"
	"github.com/iwvelando/oreha-calculator/internal/report"
	"github.com/iwvelando/oreha-calculator/pkg/constants"
	"github.com/iwvelando/oreha-calculator/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the evaluation API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metricsMiddleware)

	r.Get("/health", h.handleHealth)
	r.Handle("/metrics", metricsHandler())

	r.Route("/api", func(r chi.Router) {
		// Evaluation from an uploaded YAML configuration
		r.Post("/evaluate", h.handleEvaluate)

		// Evaluation for editor-driven updates
		r.Post("/editor/evaluate", h.handleEvaluateEditor)

		// Config serialization for editor downloads
		r.Post("/editor/export", h.handleConfigExport)

		r.Get("/recipe", h.handleRecipe)
		r.Get("/version", h.handleVersion)
	})

	return r
}

type evaluateResponse struct {
	Report     output.View            `json:"report"`
	CSV        string                 `json:"csv"`
	Warnings   []string               `json:"warnings,omitempty"`
	Duration   string                 `json:"duration"`
	Config     map[string]interface{} `json:"config,omitempty"`
	ConfigYAML string                 `json:"configYaml,omitempty"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleRecipe(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, market.DefaultRecipe())
}

func (h *handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), "server.handleEvaluate")
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), "server.handleEvaluate")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing configuration file", "server.handleEvaluate")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handleEvaluate"),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), "server.handleEvaluate")
		return
	}

	configBytes := buf.Bytes()
	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("error reading config data, %v", err), "server.handleEvaluate")
		return
	}

	h.runEvaluation(w, configBytes, configMap, start, "server.handleEvaluate")
}

func (h *handler) handleEvaluateEditor(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleEvaluateEditor"
	start := time.Now()

	payload, err := h.decodeObject(w, r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	// The editor may send the configuration bare or wrapped as {"config": {...}}.
	if rawConfig, ok := payload["config"]; ok {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			h.respondError(w, http.StatusBadRequest, "invalid config payload: expected object", op)
			return
		}
		payload = cfgMap
	}

	configBytes, err := yaml.Marshal(payload)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	h.runEvaluation(w, configBytes, payload, start, op)
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConfigExport"

	payload, err := h.decodeObject(w, r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	out, err := exportYAML(payload)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"configYaml": string(out)})
}

// decodeObject reads a size-limited JSON object from the request body.
func (h *handler) decodeObject(w http.ResponseWriter, r *http.Request) (map[string]interface{}, error) {
	var payload map[string]interface{}
	body := http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}
	return payload, nil
}

func (h *handler) runEvaluation(w http.ResponseWriter, configBytes []byte, configMap map[string]interface{}, start time.Time, op string) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		EvaluationErrorsTotal.WithLabelValues("config").Inc()
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	if err := cfg.Validate(); err != nil {
		h.respondDomainError(w, err, op)
		return
	}
	warnings := cfg.ValidateConfiguration()

	rep, err := report.Build(h.logger, *cfg)
	if err != nil {
		h.respondDomainError(w, err, op)
		return
	}
	EvaluationsTotal.WithLabelValues(string(rep.Holdings.Strategy)).Inc()

	elapsed := time.Since(start)
	if configMap == nil {
		configMap = make(map[string]interface{})
	}

	response := evaluateResponse{
		Report:     output.NewView(rep),
		CSV:        output.CsvString(rep),
		Warnings:   warnings,
		Duration:   elapsed.String(),
		Config:     configMap,
		ConfigYAML: string(configBytes),
	}

	h.logger.Info("evaluation computed",
		zap.String("op", op),
		zap.String("strategy", string(rep.Holdings.Strategy)),
		zap.Int("totalCrafts", rep.Holdings.TotalCrafts),
		zap.Bool("experiment", rep.Backtest != nil),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) respondDomainError(w http.ResponseWriter, err error, op string) {
	var de *market.DomainError
	if errors.As(err, &de) {
		EvaluationErrorsTotal.WithLabelValues(strings.ReplaceAll(de.Kind.String(), " ", "_")).Inc()
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	EvaluationErrorsTotal.WithLabelValues("internal").Inc()
	h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to evaluate: %v", err), op)
}

// exportKeyOrder lists config sections in the order a person would write
// them. Unknown keys follow alphabetically.
var exportKeyOrder = []string{"market", "inventory", "recipe", "experiment", "options", "logging", "output"}

func exportYAML(payload map[string]interface{}) ([]byte, error) {
	node, err := orderedConfigNode(payload)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

func orderedConfigNode(payload map[string]interface{}) (*yaml.Node, error) {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	rank := func(key string) int {
		for i, known := range exportKeyOrder {
			if key == known {
				return i
			}
		}
		return len(exportKeyOrder)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := rank(keys[i]), rank(keys[j])
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})

	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range keys {
		value := &yaml.Node{}
		if err := value.Encode(payload[key]); err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			value,
		)
	}
	return node, nil
}

func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(trimmed, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("evaluation request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
