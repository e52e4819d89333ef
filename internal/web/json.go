package web

import "encoding/json"

// InfoJSON is the /info response body.
type InfoJSON struct {
	SSID string `json:"ssid"`
	IP   string `json:"ip"`
}

func formatInfo(info Info) []byte {
	data, _ := json.Marshal(InfoJSON{SSID: info.SSID, IP: info.IP})
	return data
}
