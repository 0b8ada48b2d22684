package entity

// Flight mirrors one row of the read-only flights table. Delay columns are
// signed minutes; NULL means the value was never recorded. Negative delay =
// early departure/arrival.
type Flight struct {
	ID                 int64   `gorm:"column:id;primaryKey" json:"id"`
	Year               int     `gorm:"column:year" json:"year"`
	Month              int     `gorm:"column:month" json:"month"`
	Day                int     `gorm:"column:day" json:"day"`
	DayOfWeek          int     `gorm:"column:day_of_week" json:"day_of_week"`
	AirlineID          int64   `gorm:"column:airline" json:"airline_id"`
	FlightNumber       string  `gorm:"column:flight_number" json:"flight_number"`
	TailNumber         string  `gorm:"column:tail_number" json:"tail_number"`
	OriginAirport      *string `gorm:"column:origin_airport" json:"origin_airport"`
	DestinationAirport *string `gorm:"column:destination_airport" json:"destination_airport"`
	ScheduledDeparture *string `gorm:"column:scheduled_departure" json:"scheduled_departure"`
	DepartureTime      *string `gorm:"column:departure_time" json:"departure_time"`
	DepartureDelay     *int64  `gorm:"column:departure_delay" json:"departure_delay"`
	ArrivalDelay       *int64  `gorm:"column:arrival_delay" json:"arrival_delay"`
	AirSystemDelay     *int64  `gorm:"column:air_system_delay" json:"air_system_delay"`
	SecurityDelay      *int64  `gorm:"column:security_delay" json:"security_delay"`
	AirlineDelay       *int64  `gorm:"column:airline_delay" json:"airline_delay"`
	LateAircraftDelay  *int64  `gorm:"column:late_aircraft_delay" json:"late_aircraft_delay"`
	WeatherDelay       *int64  `gorm:"column:weather_delay" json:"weather_delay"`
}

func (Flight) TableName() string {
	return "flights"
}

type Airline struct {
	ID      int64  `gorm:"column:id;primaryKey" json:"id"`
	Airline string `gorm:"column:airline" json:"airline"`
}

func (Airline) TableName() string {
	return "airlines"
}

// Airport coordinates are either both present or both absent.
type Airport struct {
	IATACode  string   `gorm:"column:iata_code;primaryKey" json:"iata_code"`
	Airport   string   `gorm:"column:airport" json:"airport"`
	City      string   `gorm:"column:city" json:"city"`
	State     string   `gorm:"column:state" json:"state"`
	Country   string   `gorm:"column:country" json:"country"`
	Latitude  *float64 `gorm:"column:latitude" json:"latitude"`
	Longitude *float64 `gorm:"column:longitude" json:"longitude"`
}

func (Airport) TableName() string {
	return "airports"
}

// FlightRow is the typed record every row-returning flight query produces.
// Each query SELECTs explicit lowercase aliases so scanning never depends on
// the dataset's column casing.
type FlightRow struct {
	FlightID           int64  `gorm:"column:flight_id" json:"flight_id"`
	OriginAirport      string `gorm:"column:origin_airport" json:"origin_airport"`
	DestinationAirport string `gorm:"column:destination_airport" json:"destination_airport"`
	Airline            string `gorm:"column:airline" json:"airline"`
	Delay              *int64 `gorm:"column:delay" json:"delay"`
}

// Delayed reports whether the flight actually left late. An unknown delay
// counts as on time, not as missing data.
func (r FlightRow) Delayed() bool {
	return r.Delay != nil && *r.Delay > 0
}

// DelayMinutes returns the departure delay with NULL mapped to 0.
func (r FlightRow) DelayMinutes() int64 {
	if r.Delay == nil {
		return 0
	}
	return *r.Delay
}

// DepartureSample is the raw material of the by-hour aggregation: the
// recorded departure time cell (stringified, may need zero padding) and the
// departure delay.
type DepartureSample struct {
	Time  string `gorm:"column:departure_time" json:"departure_time"`
	Delay *int64 `gorm:"column:departure_delay" json:"departure_delay"`
}
