//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译，
// 构建前需要把 data/config.yaml 复制到 mobile/data/ 下。
package mobile

import "embed"

//go:embed data/config.yaml
var dataFS embed.FS
