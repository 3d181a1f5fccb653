package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mongolift/mongolift/internal/core/statement"
)

// requestJSON is the file format both translate and exec consume: the
// statement envelope plus optional execution-time bindings and paging.
type requestJSON struct {
	Statement json.RawMessage        `json:"statement"`
	Bindings  map[string]interface{} `json:"bindings"`
	Options   *optionsJSON           `json:"options"`
}

type optionsJSON struct {
	Limit *limitJSON `json:"limit"`
}

type limitJSON struct {
	Offset  *int `json:"offset"`
	MaxRows *int `json:"maxRows"`
}

// readRequest loads a request from the named file, or stdin when the
// argument is "-" or absent.
func readRequest(args []string) (*requestJSON, error) {
	var data []byte
	var err error
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}

	var req requestJSON
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	if req.Statement == nil {
		return nil, fmt.Errorf("request carries no statement")
	}
	return &req, nil
}

// bindings converts the request's binding values, mapping JSON's float64
// numbers onto int64 where the value is integral.
func (r *requestJSON) bindings() statement.Bindings {
	if r.Bindings == nil {
		return nil
	}
	b := make(statement.Bindings, len(r.Bindings))
	for k, v := range r.Bindings {
		if f, ok := v.(float64); ok && f == float64(int64(f)) {
			b[k] = int64(f)
			continue
		}
		b[k] = v
	}
	return b
}

func (r *requestJSON) options() *statement.QueryOptions {
	if r.Options == nil {
		return nil
	}
	opts := &statement.QueryOptions{}
	if r.Options.Limit != nil {
		opts.Limit = statement.Limit{
			Offset:  r.Options.Limit.Offset,
			MaxRows: r.Options.Limit.MaxRows,
		}
	}
	return opts
}
