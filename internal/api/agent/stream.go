package agent

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/futig/legal-assistant/internal/entity"
)

// eventStream writes server-sent events and flushes after each one.
type eventStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newEventStream(w http.ResponseWriter) *eventStream {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	return &eventStream{w: w, flusher: flusher}
}

// send writes one event. Multi-line data is split into several data fields,
// which clients join back with newlines.
func (s *eventStream) send(event, data string) error {
	var b strings.Builder
	if event != "" {
		fmt.Fprintf(&b, "event: %s\n", event)
	}
	for _, line := range strings.Split(data, "\n") {
		fmt.Fprintf(&b, "data: %s\n", line)
	}
	b.WriteString("\n")

	if _, err := s.w.Write([]byte(b.String())); err != nil {
		return err
	}

	if s.flusher != nil {
		s.flusher.Flush()
	}
	return nil
}

// writeReply streams the reply chunks, then the document, then the end marker.
func writeReply(stream *eventStream, resp *entity.SendMessageResponse) error {
	for _, chunk := range replyChunks(resp.AssistantReply) {
		if err := stream.send("", chunk); err != nil {
			return err
		}
	}

	document := ""
	if resp.Document != nil {
		document = *resp.Document
	}

	if err := stream.send("document", document); err != nil {
		return err
	}

	return stream.send("done", "END")
}

// replyChunks splits a reply into word sized pieces, whitespace kept.
func replyChunks(reply string) []string {
	if reply == "" {
		return nil
	}

	return strings.SplitAfter(reply, " ")
}
