package link

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"track-svr/internal/pipeline"
)

// Un proxy que deja de leer no debe bloquear a los workers.
var writeTimeout = 2 * time.Second

// Configuración del link
var (
	proxyAddr string
	logger    *slog.Logger

	mu   sync.Mutex
	conn net.Conn
)

// Init arranca el cliente TCP hacia el proxy.
// Si addr == "", deja el link deshabilitado.
func Init(addr string, lg *slog.Logger) {
	proxyAddr = addr
	if proxyAddr == "" {
		lg.Info("link: disabled (no proxy address configured)")
		return
	}
	logger = lg.With("component", "link")

	go connectLoop()
}

// -------------------------------------------------------------------
//                        LOOP DE CONEXIÓN
// -------------------------------------------------------------------

func connectLoop() {
	for {
		c, err := net.Dial("tcp", proxyAddr)
		if err != nil {
			if logger != nil {
				logger.Error("link: dial failed", "addr", proxyAddr, "err", err)
			}
			time.Sleep(5 * time.Second)
			continue
		}

		setConn(c)
		if logger != nil {
			logger.Info("link: connected", "remote", c.RemoteAddr().String())
		}

		// leer en este hilo hasta que se caiga
		readLoop(c)

		clearConn(c)
		if logger != nil {
			logger.Warn("link: connection closed, reconnecting...")
		}
		time.Sleep(2 * time.Second)
	}
}

func setConn(c net.Conn) {
	mu.Lock()
	defer mu.Unlock()
	conn = c
}

func clearConn(c net.Conn) {
	mu.Lock()
	defer mu.Unlock()
	if conn == c {
		_ = conn.Close()
		conn = nil
	}
}

func getConn() net.Conn {
	mu.Lock()
	defer mu.Unlock()
	return conn
}

func readLoop(c net.Conn) {
	r := bufio.NewScanner(c)
	for r.Scan() {
		handleIncomingLine(r.Bytes())
	}
	if err := r.Err(); err != nil && err != io.EOF {
		if logger != nil {
			logger.Warn("link: read error", "err", err)
		}
	}
}

// Por ahora sólo logueamos lo que llega del proxy.
func handleIncomingLine(line []byte) {
	if logger != nil {
		logger.Debug("link: incoming line", "line", string(line))
	}
}

// -------------------------------------------------------------------
//                          ENVÍO NDJSON
// -------------------------------------------------------------------

func sendNDJSON(v interface{}) error {
	c := getConn()
	if c == nil {
		return fmt.Errorf("link: not connected")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	// varias goroutines del pool escriben a la vez
	mu.Lock()
	defer mu.Unlock()
	if err := c.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	_, err = c.Write(append(b, '\n'))
	return err
}

type trackPayload struct {
	Event EventKind `json:"event"`
	*pipeline.TrackingObject
}

type proximityPayload struct {
	Event EventKind `json:"event"`
	*pipeline.ProximityObject
}

// SendTracking envía el estado actual del track como NDJSON.
func SendTracking(tr *pipeline.TrackingObject) {
	if proxyAddr == "" || tr == nil {
		return
	}
	if err := sendNDJSON(trackPayload{Event: EventTrackUpdate, TrackingObject: tr}); err != nil && logger != nil {
		logger.Warn("link: send tracking failed", "id", tr.ID, "err", err)
	}
}

func SendProximity(p *pipeline.ProximityObject) {
	if proxyAddr == "" || p == nil {
		return
	}
	if err := sendNDJSON(proximityPayload{Event: EventProximityChange, ProximityObject: p}); err != nil && logger != nil {
		logger.Warn("link: send proximity failed", "ref_id", p.RefID, "err", err)
	}
}
