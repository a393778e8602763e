//go:build sonic

package browse

import "github.com/bytedance/sonic"

var jsonMarshal = sonic.Marshal
