package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)
	slugDashRuns     = regexp.MustCompile(`-{2,}`)
)

// Slugify 将名称转换为URL友好的slug
// 非字母数字字符折叠为单个连字符,全部小写;
// 结果为空时(如纯中文名称)回退为"item"。
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	slug = slugDashRuns.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if slug == "" {
		slug = "item"
	}

	// 截断过长slug,保留索引友好的长度
	if len(slug) > 100 {
		slug = strings.Trim(slug[:100], "-")
	}

	return slug
}

// UniqueSlug 生成唯一slug
// exists回调报告候选slug是否已被占用,冲突时追加递增序号。
func UniqueSlug(name string, exists func(slug string) (bool, error)) (string, error) {
	base := Slugify(name)
	slug := base

	for counter := 1; ; counter++ {
		taken, err := exists(slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}
