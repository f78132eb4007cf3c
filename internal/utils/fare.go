package utils

// ComputeFare returns the total for passengers seats at farePerSeat.
// A caller-supplied total takes precedence when it is positive.
func ComputeFare(farePerSeat float64, passengers int, suppliedTotal float64) float64 {
	if suppliedTotal > 0 {
		return RoundMoney(suppliedTotal)
	}
	if passengers <= 0 || farePerSeat <= 0 {
		return 0
	}
	return RoundMoney(farePerSeat * float64(passengers))
}
