package utils

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJson serializa o valor com indentação; []byte é tratado como JSON já serializado
func PrettyJson(in any) string {
	if raw, ok := in.([]byte); ok {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return string(raw)
		}
		in = decoded
	}

	buffer, err := json.MarshalIndent(in, "", "\t")
	if err != nil {
		fmt.Println(err)
		return ""
	}

	return string(buffer)
}
