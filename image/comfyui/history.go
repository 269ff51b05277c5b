package comfyui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"presetbird/extension"
	"presetbird/http/request"
	"presetbird/logger"
)

type historyEntry struct {
	Outputs map[string]json.RawMessage `json:"outputs"`
}

// textOutputs reads the finished prompt from the server history and returns
// the text every node produced. Nodes without text are left out.
func textOutputs(ctx context.Context, clientAddr string, clientPort int, promptID string) ([]extension.ExecutedMessage, error) {
	req := request.Request{
		Url:    fmt.Sprintf("http://%s:%d/history/%s", clientAddr, clientPort, promptID),
		Method: http.MethodGet,
	}

	var history map[string]historyEntry
	if err := req.Call(ctx, &history); err != nil {
		return nil, fmt.Errorf("could not read prompt history: %w", err)
	}

	entry, ok := history[promptID]
	if !ok {
		return nil, nil
	}

	nodes := make([]string, 0, len(entry.Outputs))
	for node := range entry.Outputs {
		nodes = append(nodes, node)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodeLess(nodes[i], nodes[j]) })

	var out []extension.ExecutedMessage
	for _, node := range nodes {
		msg, err := extension.ParseNodeOutput(node, entry.Outputs[node])
		if err != nil {
			logger.Warn("Skipping node output", "prompt_id", promptID, "error", err)
			continue
		}
		if len(msg.Text) > 0 {
			out = append(out, msg)
		}
	}
	return out, nil
}

// nodeLess orders numeric node ids numerically and the rest after them.
func nodeLess(a, b string) bool {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	switch {
	case aErr == nil && bErr == nil:
		return ai < bi
	case aErr == nil:
		return true
	case bErr == nil:
		return false
	}
	return a < b
}
