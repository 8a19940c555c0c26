package codec

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Reader parses an LSP Content-Length-framed byte stream into a lazy
// sequence of classified Messages (spec.md §4.1). It tolerates arbitrary
// chunking of the underlying stream: header and body bytes may arrive
// across any number of reads, since every read here blocks on the
// underlying *bufio.Reader rather than assuming a frame arrives whole.
type Reader struct {
	r *bufio.Reader
}

// NewReader wraps an io.Reader (typically stdin) for frame-at-a-time
// consumption.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next blocks until a full frame is available, then returns its classified
// Message. It returns io.EOF when the underlying stream is closed cleanly
// between frames.
func (rd *Reader) Next() (Message, error) {
	for {
		body, err := rd.readFrame()
		if err != nil {
			return Message{}, err
		}
		if body == nil {
			// A malformed frame was discarded; scanning already resumed at
			// the next header block, so just try again.
			continue
		}
		msg := classify(body)
		if msg.Kind == KindParseError && msg.ParseErr == errNoID {
			// A response without an id is silently dropped (spec.md §4.1).
			continue
		}
		return msg, nil
	}
}

// readFrame reads one Content-Length-delimited body, or (nil, nil) if the
// frame it encountered was malformed and should be skipped.
func (rd *Reader) readFrame() ([]byte, error) {
	headers, ok, err := rd.readHeaders()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	clStr, present := headers["content-length"]
	if !present {
		return nil, nil
	}
	contentLength, convErr := strconv.Atoi(strings.TrimSpace(clStr))
	if convErr != nil || contentLength < 0 {
		return nil, nil
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(rd.r, body); err != nil {
		return nil, err
	}
	return body, nil
}

// readHeaders reads header lines up to and including the blank line that
// terminates them. ok is false if any header line was malformed (missing
// "name: value" shape); in that case scanning has already resumed past the
// blank line and the caller should simply retry reading the next frame.
func (rd *Reader) readHeaders() (map[string]string, bool, error) {
	headers := make(map[string]string)
	malformed := false
	for {
		line, err := rd.r.ReadString('\n')
		if err != nil {
			return nil, false, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		name, value, found := strings.Cut(line, ":")
		if !found {
			malformed = true
			continue
		}
		headers[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(value)
	}
	if malformed {
		return nil, false, nil
	}
	return headers, true, nil
}
