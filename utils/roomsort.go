package utils

import "strconv"

// RoomNumberValue extracts the digits from a room number ("P101", "A-12") so
// room lists sort numerically instead of lexically. Numberless labels sort
// first.
func RoomNumberValue(roomNumber string) int {
	digits := make([]byte, 0, len(roomNumber))
	for i := 0; i < len(roomNumber); i++ {
		if roomNumber[i] >= '0' && roomNumber[i] <= '9' {
			digits = append(digits, roomNumber[i])
		}
	}
	if len(digits) == 0 {
		return 0
	}
	n, err := strconv.Atoi(string(digits))
	if err != nil {
		return 0
	}
	return n
}
