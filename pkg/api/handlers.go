package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ssargent/brokkr/pkg/codec"
)

// Server holds the API server state
type Server struct {
	codec   *codec.RecordCodec
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		codec:   codec.NewRecordCodec(),
		config:  config,
		metrics: metrics,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleDecodeHeader decodes a raw FileHeader image posted as octet-stream.
func (s *Server) handleDecodeHeader(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	body, err := readImage(w, r, codec.FileHeaderSize)
	if err != nil {
		s.metrics.RecordCodecOperation("decode_header", false, time.Since(start))
		return
	}
	h, err := s.codec.DecodeHeader(body)
	if err != nil {
		s.metrics.RecordCodecOperation("decode_header", false, time.Since(start))
		sendError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.metrics.RecordCodecOperation("decode_header", true, time.Since(start))
	sendSuccess(w, summarizeHeader(h))
}

// handleDecodeDevice decodes a raw ComplexDeviceDescriptor image.
func (s *Server) handleDecodeDevice(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	body, err := readImage(w, r, codec.DeviceDescriptorSize)
	if err != nil {
		s.metrics.RecordCodecOperation("decode_device", false, time.Since(start))
		return
	}
	d, err := s.codec.DecodeDescriptor(body)
	if err != nil {
		s.metrics.RecordCodecOperation("decode_device", false, time.Since(start))
		sendError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.metrics.RecordCodecOperation("decode_device", true, time.Since(start))
	sendSuccess(w, summarizeDevice(d, s.config.Strict))
}

// handleDecodeManager decodes a raw DeviceManager image.
func (s *Server) handleDecodeManager(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	body, err := readImage(w, r, codec.DeviceManagerSize)
	if err != nil {
		s.metrics.RecordCodecOperation("decode_manager", false, time.Since(start))
		return
	}
	m, err := s.codec.DecodeManager(body)
	if err != nil {
		s.metrics.RecordCodecOperation("decode_manager", false, time.Since(start))
		sendError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.metrics.RecordCodecOperation("decode_manager", true, time.Since(start))
	sendSuccess(w, summarizeManager(m, s.config.Strict))
}

// handleVerifyHeader checks the crc32 of a raw FileHeader image.
func (s *Server) handleVerifyHeader(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	body, err := readImage(w, r, codec.FileHeaderSize)
	if err != nil {
		s.metrics.RecordCodecOperation("verify_header", false, time.Since(start))
		return
	}
	ok, err := codec.VerifyHeader(body)
	if err != nil {
		s.metrics.RecordCodecOperation("verify_header", false, time.Since(start))
		sendError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.metrics.RecordCodecOperation("verify_header", ok, time.Since(start))
	sendSuccess(w, VerifyResult{Record: "FileHeader", OK: ok})
}

// handleVerifyDevice checks the structure_checksum of a raw descriptor image.
func (s *Server) handleVerifyDevice(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	body, err := readImage(w, r, codec.DeviceDescriptorSize)
	if err != nil {
		s.metrics.RecordCodecOperation("verify_device", false, time.Since(start))
		return
	}
	ok, err := codec.VerifyDescriptor(body)
	if err != nil {
		s.metrics.RecordCodecOperation("verify_device", false, time.Since(start))
		sendError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.metrics.RecordCodecOperation("verify_device", ok, time.Since(start))
	sendSuccess(w, VerifyResult{Record: "ComplexDeviceDescriptor", OK: ok})
}

// handleVerifyManager checks every checksum of a raw DeviceManager image.
func (s *Server) handleVerifyManager(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	body, err := readImage(w, r, codec.DeviceManagerSize)
	if err != nil {
		s.metrics.RecordCodecOperation("verify_manager", false, time.Since(start))
		return
	}
	ok, err := codec.VerifyManager(body)
	if err != nil {
		s.metrics.RecordCodecOperation("verify_manager", false, time.Since(start))
		sendError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.metrics.RecordCodecOperation("verify_manager", ok, time.Since(start))
	sendSuccess(w, VerifyResult{Record: "DeviceManager", OK: ok})
}

// handleLayouts dumps the layout descriptor tables.
func (s *Server) handleLayouts(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, summarizeLayouts())
}

// readImage reads a request body expected to hold a fixed-size record image.
// A short body is reported to the client immediately; trailing bytes are the
// codec's business (it ignores them).
func readImage(w http.ResponseWriter, r *http.Request, need int) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, int64(codec.DeviceManagerSize)+1))
	if err != nil {
		sendError(w, "failed to read request body", http.StatusBadRequest)
		return nil, err
	}
	if len(body) < need {
		err := fmt.Errorf("body is %d bytes, record needs %d", len(body), need)
		sendError(w, err.Error(), http.StatusBadRequest)
		return nil, err
	}
	return body, nil
}

func sendSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(APIResponse{Success: true, Data: data})
}

func sendError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(APIResponse{Success: false, Error: message})
}

func hex32(v uint32) string {
	return fmt.Sprintf("0x%08X", v)
}

func version(v codec.Version) string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}
