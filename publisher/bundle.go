package publisher

import (
	"encoding/json"

	"ui_mockups/generator"
)

// BundleImage 对应设计插件导入的一帧。
// 插件同样接受 "url"（https 托管地址）代替 "data"，这里只输出内联的 data URL。
type BundleImage struct {
	Name string `json:"name"`
	Data string `json:"data"`
}

// Bundle is the JSON payload pasted into the design-tool importer plugin.
type Bundle struct {
	Images []BundleImage `json:"images"`
}

// BuildBundle keeps item order and copies name and data URL verbatim.
func BuildBundle(items []generator.MockupItem) Bundle {
	b := Bundle{Images: make([]BundleImage, 0, len(items))}
	for _, item := range items {
		b.Images = append(b.Images, BundleImage{Name: item.Name, Data: item.DataURL})
	}
	return b
}

// JSON renders the bundle with two-space indentation.
func (b Bundle) JSON() ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}
