package pricing

// Rates holds the three per-passenger unit prices of one seat tier, in whole currency units.
type Rates struct {
	Adult  int64 `json:"adult"`
	Child  int64 `json:"child"`
	Infant int64 `json:"infant"`
}

func (r Rates) Get(p PassengerType) int64 {
	switch p {
	case PassengerAdult:
		return r.Adult
	case PassengerChild:
		return r.Child
	case PassengerInfant:
		return r.Infant
	default:
		return 0
	}
}

func (r *Rates) set(p PassengerType, v int64) {
	switch p {
	case PassengerAdult:
		r.Adult = v
	case PassengerChild:
		r.Child = v
	case PassengerInfant:
		r.Infant = v
	}
}

// Grid is the 2x3 seat type by passenger type price matrix.
type Grid struct {
	Normal Rates `json:"normal"`
	VIP    Rates `json:"vip"`
}

func (g Grid) Rates(s SeatType) Rates {
	if s == SeatVIP {
		return g.VIP
	}
	return g.Normal
}

func (g Grid) Get(s SeatType, p PassengerType) int64 {
	return g.Rates(s).Get(p)
}

func (g *Grid) Set(s SeatType, p PassengerType, v int64) {
	switch s {
	case SeatNormal:
		g.Normal.set(p, v)
	case SeatVIP:
		g.VIP.set(p, v)
	}
}

type Cell struct {
	Seat      SeatType
	Passenger PassengerType
}

// Cells expands the ALL wildcards into the concrete cells they cover, in grid order.
func Cells(seat SeatType, passenger PassengerType) []Cell {
	seats := []SeatType{seat}
	if seat == SeatTypeAll {
		seats = concreteSeats
	}
	passengers := []PassengerType{passenger}
	if passenger == PassengerAll {
		passengers = concretePassengers
	}

	cells := make([]Cell, 0, len(seats)*len(passengers))
	for _, s := range seats {
		for _, p := range passengers {
			cells = append(cells, Cell{Seat: s, Passenger: p})
		}
	}
	return cells
}
