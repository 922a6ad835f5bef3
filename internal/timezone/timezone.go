package timezone

import "time"

// A clínica opera num único fuso; prazos de inscrição e datas de
// vencimento são interpretados nele.
const DefaultTimezone = "America/Sao_Paulo"

func Location() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location())
}

// Today devolve a data corrente no formato usado pelas telas (YYYY-MM-DD).
func Today() string {
	return Now().Format("2006-01-02")
}
