package config

// Review 变更审核的字段展示规则
type Review struct {
	HiddenFields     []string `json:"hidden_fields" yaml:"hidden_fields"`
	ImageFields      []string `json:"image_fields" yaml:"image_fields"`
	StructuredFields []string `json:"structured_fields" yaml:"structured_fields"`
}

func DefaultReview() *Review {
	return &Review{
		HiddenFields:     []string{"avatarFileName", "idCardFileName", "licenseFileName"},
		ImageFields:      []string{"avatar", "idCardImage", "licenseImage"},
		StructuredFields: []string{"address", "bankAccount"},
	}
}
