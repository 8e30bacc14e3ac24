package fileutil

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/pretty"

	"github.com/agentstation/curator/pkg/constants"
	"github.com/agentstation/curator/pkg/errors"
)

var prettyOptions = &pretty.Options{
	Width:    constants.JSONWidth,
	Prefix:   "",
	Indent:   constants.JSONIndent,
	SortKeys: false,
}

// PrettyJSON formats raw JSON the way every persisted document is stored:
// two-space indent, short arrays kept on one line, key order untouched,
// trailing newline.
func PrettyJSON(raw []byte) []byte {
	return pretty.PrettyOptions(raw, prettyOptions)
}

// MarshalLiteral is json.Marshal without HTML escaping, so URLs keep their
// literal & < and > characters.
func MarshalLiteral(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// MarshalPretty marshals v with MarshalLiteral and formats it with PrettyJSON.
func MarshalPretty(v any) ([]byte, error) {
	raw, err := MarshalLiteral(v)
	if err != nil {
		return nil, errors.WrapParse("json", "", err)
	}
	return PrettyJSON(raw), nil
}
