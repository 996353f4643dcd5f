package types

type UploadImageResp struct {
	Record Record `json:"record"`
	Url    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}
