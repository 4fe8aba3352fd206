package main

// GlobalFlags holds persistent flags shared by all subcommands.
type GlobalFlags struct {
	ConfigPath string // path to TOML config file
	DSN        string // store DSN override (data dir or sqlite://path)
}

// CustomerAddFlags holds flags for "customer add".
type CustomerAddFlags struct {
	Name       string
	Phone      string
	Email      string
	Address    string
	BoatMake   string
	BoatModel  string
	BoatLength float64
	BoatName   string
}

// JobAddFlags holds flags for "job add". Price stays a string so non-numeric
// input is rejected as such instead of failing flag parsing opaquely.
type JobAddFlags struct {
	CustomerID  string
	Service     string
	At          string // scheduled datetime, "YYYY-MM-DD HH:MM"
	Origin      string
	Destination string
	Price       string
	Notes       string
}

// JobListFlags holds flags for "job list".
type JobListFlags struct {
	Status string
	JSON   bool
}

// CustomerListFlags holds flags for "customer list".
type CustomerListFlags struct {
	JSON bool
}
