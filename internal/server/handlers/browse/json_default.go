//go:build !sonic

package browse

import "github.com/goccy/go-json"

var jsonMarshal = json.Marshal
