package employee

import (
	"fmt"
	"strconv"
	"strings"
)

// IDPrefix は社員 ID の接頭辞です。
const IDPrefix = "NV"

// GenerateID は現在の件数から次の社員 ID を生成します。
// 3 桁でゼロ埋めし、1000 件目以降は桁を切り詰めません (NV1000)。
func GenerateID(currentCount int) string {
	if currentCount < 0 {
		currentCount = 0
	}
	return fmt.Sprintf("%s%03d", IDPrefix, currentCount+1)
}

// maxIDSequence は連番として扱う数値部分の上限です。これを超える ID は採番の基点にしません。
const maxIDSequence = 999_999_999

// idSequence は "NV" に続く数値部分を返します。数字以外を含む ID や上限を超える ID では false を返します。
func idSequence(id string) (int, bool) {
	digits, ok := strings.CutPrefix(id, IDPrefix)
	if !ok || digits == "" || len(digits) > len(strconv.Itoa(maxIDSequence)) {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n > maxIDSequence {
		return 0, false
	}
	return n, true
}
