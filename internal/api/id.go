package api

import "strconv"

// MaxID 是 INTEGER 主鍵的上限
const MaxID = 1<<31 - 1

// ParseID 解析路徑或查詢參數中的 ID，超出 INTEGER 範圍視為無效
func ParseID(s string) (int, bool) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}
