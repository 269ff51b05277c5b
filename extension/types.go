package extension

import (
	"errors"
	"sync"

	"presetbird/graph"
)

var ErrDuplicateExtension = errors.New("extension already registered")

type (
	// NodeDef describes a node class as the editor advertises it.
	NodeDef struct {
		Name        string
		Category    string
		DisplayName string
	}

	// ExecutedMessage is what the server sends back once a node has run.
	ExecutedMessage struct {
		Node string
		Text []string
	}

	// Extension is a behaviour patch for matching node classes. Hooks run
	// after the editor's own handling.
	Extension interface {
		Name() string
		Matches(def NodeDef) bool
		OnNodeCreated(node *graph.Node)
		OnExecuted(node *graph.Node, msg ExecutedMessage)
	}

	Registry struct {
		mutex      sync.RWMutex
		extensions []Extension
		defs       map[string]NodeDef
	}
)
