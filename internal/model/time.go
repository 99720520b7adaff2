package model

import (
	"fmt"
	"time"
)

// LocalTime 将时间序列化为 "YYYY-MM-DD HH:MM:SS" 供接口层输出。
type LocalTime time.Time

const localTimeLayout = "2006-01-02 15:04:05"

// MarshalJSON 实现 json.Marshaler 接口，零值时间输出 null。
func (t LocalTime) MarshalJSON() ([]byte, error) {
	tt := time.Time(t)
	if tt.IsZero() {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("\"%s\"", tt.Format(localTimeLayout))), nil
}
