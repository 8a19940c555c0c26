package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/apexlang/apex-lsp/internal/codec"
	"github.com/apexlang/apex-lsp/internal/lsp"
	"github.com/apexlang/apex-lsp/internal/rpc"
)

// Run is the server's main loop: read a frame, dispatch it, repeat, until
// the stream closes or 'exit' is processed.
func (s *Server) Run(ctx context.Context) error {
	defer s.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msg, err := s.reader.Next()
		if err != nil {
			s.logger.Info("input stream closed", zap.Error(err))
			return nil
		}

		if exit := s.dispatch(ctx, msg); exit {
			return nil
		}
	}
}

// dispatch routes one classified message to its handler. It returns true
// when the 'exit' notification was processed and Run should stop.
func (s *Server) dispatch(ctx context.Context, msg codec.Message) bool {
	switch msg.Kind {
	case codec.KindParseError:
		s.logger.Warn("discarding malformed frame", zap.Error(msg.ParseErr))
		return false
	case codec.KindResponseSuccess, codec.KindResponseError:
		// This server never sends outbound requests that expect a typed
		// reply beyond window/workDoneProgress/create, whose result is
		// always ignored (spec.md §6).
		return false
	case codec.KindNotification:
		s.dispatchNotification(ctx, msg)
		return msg.Method == "exit" && s.getState() == StateExited
	case codec.KindRequest:
		s.dispatchRequest(ctx, msg)
		return false
	}
	return false
}

func (s *Server) dispatchNotification(ctx context.Context, msg codec.Message) {
	switch msg.Method {
	case "initialized":
		s.handleInitialized(ctx, msg.Params)
	case "exit":
		s.handleExit()
	case "$/cancelRequest":
		s.handleCancel(msg.Params)
	case "textDocument/didOpen":
		s.handleDidOpen(msg.Params)
	case "textDocument/didChange":
		s.handleDidChange(msg.Params)
	case "textDocument/didClose":
		s.handleDidClose(msg.Params)
	default:
		s.logger.Debug("ignoring unhandled notification", zap.String("method", msg.Method))
	}
}

func (s *Server) dispatchRequest(ctx context.Context, msg codec.Message) {
	state := s.getState()
	if state == StateStarting && msg.Method != "initialize" {
		s.respondError(msg.ID, rpc.NewError(rpc.CodeServerNotInitialized, "server has not been initialized"))
		return
	}
	if state == StateShuttingDown {
		s.respondError(msg.ID, rpc.NewError(rpc.CodeInvalidRequest, "server is shutting down"))
		return
	}

	// Cancellation is checked before the handler runs, not after: once a
	// handler has already produced a result there is nothing left to cancel
	// (spec.md §4.2/§4.3, §5).
	if s.cancel.IsCancelled(msg.ID) {
		s.respondError(msg.ID, rpc.NewError(rpc.CodeRequestCancelled, "request was cancelled"))
		return
	}

	var result any
	var err error

	switch msg.Method {
	case "initialize":
		result, err = s.handleInitialize(msg.Params)
	case "shutdown":
		result, err = s.handleShutdown()
	case "textDocument/completion":
		result, err = s.handleCompletion(msg.Params)
	case "textDocument/hover":
		result, err = s.handleHover(msg.Params)
	default:
		s.respondError(msg.ID, rpc.NewError(rpc.CodeMethodNotFound, fmt.Sprintf("method not found: %s", msg.Method)))
		return
	}

	if err != nil {
		var rpcErr *rpc.Error
		if !errors.As(err, &rpcErr) {
			s.logger.Error("request handler failed", zap.String("method", msg.Method), zap.Error(err))
			rpcErr = rpc.NewError(rpc.CodeInternalError, err.Error())
		}
		s.respondError(msg.ID, rpcErr)
		return
	}
	s.respondResult(msg.ID, result)
}

func (s *Server) respondResult(id any, result any) {
	if err := s.writer.WriteResponse(id, result, nil); err != nil {
		s.logger.Error("failed to write response", zap.Error(err))
	}
}

func (s *Server) respondError(id any, err error) {
	if werr := s.writer.WriteResponse(id, nil, err); werr != nil {
		s.logger.Error("failed to write error response", zap.Error(werr))
	}
}

func (s *Server) notify(method string, params any) {
	if err := s.writer.WriteNotification(method, params); err != nil {
		s.logger.Error("failed to write notification", zap.String("method", method), zap.Error(err))
	}
}

// logToClient sends window/logMessage; pre-initialize, messages go only to
// the server's own log since the client has no connection to show them on
// yet.
func (s *Server) logToClient(level lsp.MessageType, message string) {
	if s.getState() == StateStarting {
		s.logger.Info(message)
		return
	}
	s.notify("window/logMessage", lsp.LogMessageParams{Type: level, Message: message})
}

func decodeParams[T any](raw json.RawMessage) (T, error) {
	var v T
	if len(raw) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("invalid params: %w", err)
	}
	return v, nil
}

// Close releases the parser and any per-document parse trees.
func (s *Server) Close() {
	if s.parser != nil {
		s.parser.Close()
	}
	s.localMu.Lock()
	for _, doc := range s.local {
		if doc.tree != nil {
			doc.tree.Close()
		}
	}
	s.local = nil
	s.localMu.Unlock()
}
