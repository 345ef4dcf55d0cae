package linkup

import "encoding/json"

// Wire-format payloads returned by the LibreLinkUp endpoints. Record shapes
// overlap and vary per "type" discriminator, so list entries stay raw JSON
// and decode individually; one malformed entry never aborts a batch.

type loginResponse struct {
	Status int `json:"status"`
	Data   struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		AuthTicket struct {
			Token    string `json:"token"`
			Expires  int64  `json:"expires"`
			Duration int64  `json:"duration"`
		} `json:"authTicket"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type graphResponse struct {
	Data   *graphData `json:"data"`
	Ticket struct {
		Token string `json:"token"`
	} `json:"ticket"`
}

type graphData struct {
	Connection    *connectionData   `json:"connection"`
	ActiveSensors []activeSensor    `json:"activeSensors"`
	GraphData     []json.RawMessage `json:"graphData"`
}

type connectionData struct {
	PatientID          string          `json:"patientId"`
	GlucoseMeasurement json.RawMessage `json:"glucoseMeasurement"`
}

type activeSensor struct {
	Sensor struct {
		SN string `json:"sn"`
		A  int64  `json:"a"`
		PT int    `json:"pt"`
	} `json:"sensor"`
}

type logbookResponse struct {
	Data []json.RawMessage `json:"data"`
}

// rawMeasurement covers graph samples (type 0), logbook samples (type 1),
// alarms (type 2) and hybrid sample+alarm records (type 3).
type rawMeasurement struct {
	FactoryTimestamp string  `json:"FactoryTimestamp"`
	Timestamp        string  `json:"Timestamp"`
	Type             int     `json:"type"`
	AlarmType        *int    `json:"alarmType"`
	ValueInMgPerDl   int     `json:"ValueInMgPerDl"`
	Value            float64 `json:"Value"`
	GlucoseUnits     int     `json:"GlucoseUnits"`
	MeasurementColor int     `json:"MeasurementColor"`
	TrendArrow       int     `json:"TrendArrow"`
	TrendMessage     string  `json:"TrendMessage"`
	IsHigh           bool    `json:"isHigh"`
	IsLow            bool    `json:"isLow"`
}
