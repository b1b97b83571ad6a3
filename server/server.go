package server

import (
	"fmt"
	"net/http"

	"erri120/httptracker/protocol"

	"go.uber.org/zap"
)

const defaultAnnounceInterval = 900

// GetPeersFunc looks up the current swarm members for a torrent.
type GetPeersFunc func(infoHash protocol.InfoHash) ([]protocol.Peer, error)

// GetStatisticsFunc looks up the swarm statistics for a torrent.
type GetStatisticsFunc func(infoHash protocol.InfoHash) (protocol.PeerStatistics, error)

type Server struct {
	Logger        *zap.Logger
	GetPeers      GetPeersFunc
	GetStatistics GetStatisticsFunc

	// AnnounceInterval is the number of seconds clients are told to wait
	// between announces. Defaults to 900.
	AnnounceInterval uint32

	httpServer *http.Server
	closed     bool
}

// Handler returns the tracker routes. Used directly in tests, Listen wires
// it into an HTTP server.
func (server *Server) Handler() http.Handler {
	if server.Logger == nil {
		server.Logger = zap.NewNop()
	}

	if server.AnnounceInterval == 0 {
		server.AnnounceInterval = defaultAnnounceInterval
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/announce", server.handleAnnounce)
	mux.HandleFunc("/scrape", server.handleScrape)
	return mux
}

// Starts listening for tracker requests. Blocks until Close is called.
func (server *Server) Listen(addr string) error {
	if server.closed {
		return fmt.Errorf("Server is closed!")
	}

	if server.httpServer != nil {
		return fmt.Errorf("Server is already listening!")
	}

	if server.GetPeers == nil {
		return fmt.Errorf("GetPeers function is not set!")
	}

	if server.GetStatistics == nil {
		return fmt.Errorf("GetStatistics function is not set!")
	}

	server.httpServer = &http.Server{
		Addr:    addr,
		Handler: server.Handler(),
	}

	err := server.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}

	return err
}

// Closes the underlying listener if it is open.
func (server *Server) Close() error {
	if server.closed {
		return fmt.Errorf("Server is already closed!")
	}

	server.closed = true

	if server.httpServer == nil {
		return nil
	}

	err := server.httpServer.Close()
	server.httpServer = nil
	return err
}

func (server *Server) handleAnnounce(w http.ResponseWriter, r *http.Request) {
	logger := server.Logger.With(zap.String("remote", r.RemoteAddr))

	request, err := protocol.ParseAnnounceRequest(r.URL.Query())
	if err != nil {
		logger.Warn("Rejecting malformed announce request", zap.Error(err))
		writeFailure(w, err.Error())
		return
	}

	logger = logger.With(
		zap.Binary("infoHash", request.InfoHash[:]),
		zap.Int32("event", int32(request.Event)),
	)

	peers, err := server.GetPeers(request.InfoHash)
	if err != nil {
		logger.Warn("Unable to get peers", zap.Error(err))
		writeFailure(w, "unregistered torrent")
		return
	}

	response, err := protocol.NewAnnounceResponse(server.AnnounceInterval, peers, request.Compact)
	if err != nil {
		logger.Error("Unable to build announce response", zap.Error(err))
		writeFailure(w, "internal error")
		return
	}

	logger.Debug("Handled announce request", zap.Int("peers", len(peers)))
	writeResponse(w, response.MarshalBencode())
}

func (server *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	logger := server.Logger.With(zap.String("remote", r.RemoteAddr))

	request, err := protocol.ParseScrapeRequest(r.URL.Query())
	if err != nil {
		logger.Warn("Rejecting malformed scrape request", zap.Error(err))
		writeFailure(w, err.Error())
		return
	}

	response := protocol.ScrapeResponse{
		Files: make(map[protocol.InfoHash]protocol.PeerStatistics),
	}

	// unknown torrents are left out of the response
	for _, infoHash := range request.InfoHashes {
		statistics, err := server.GetStatistics(infoHash)
		if err != nil {
			logger.Debug("Skipping unknown torrent", zap.Binary("infoHash", infoHash[:]), zap.Error(err))
			continue
		}

		response.Files[infoHash] = statistics
	}

	logger.Debug("Handled scrape request", zap.Int("files", len(response.Files)))
	writeResponse(w, response.MarshalBencode())
}

func writeResponse(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write(body)
}

// Tracker errors go out as a bencoded failure reason with status 200, not as
// an HTTP error.
func writeFailure(w http.ResponseWriter, message string) {
	writeResponse(w, protocol.FailureReason(message))
}
