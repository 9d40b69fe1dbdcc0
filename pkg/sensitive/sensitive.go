package sensitive

import (
	"fmt"

	"github.com/importcjj/sensitive"
)

// Word 敏感词过滤器，发布文章前用来拦截违禁内容
type Word struct {
	Filter *sensitive.Filter
}

// NewWord 从词库文件加载过滤器
func NewWord(dictPath string) (*Word, error) {
	filter := sensitive.New()
	if err := filter.LoadWordDict(dictPath); err != nil {
		return nil, fmt.Errorf("加载词库失败 %s: %w", dictPath, err)
	}
	return &Word{Filter: filter}, nil
}

// NewWordFromList 直接用词表构建过滤器，测试和小词库用
func NewWordFromList(words []string) *Word {
	filter := sensitive.New()
	filter.AddWord(words...)
	return &Word{Filter: filter}
}

// Validate 校验文本，命中返回 false 和第一个命中的词
func (w *Word) Validate(text string) (bool, string) {
	return w.Filter.Validate(text)
}

// Replace 把命中的词替换为指定字符
func (w *Word) Replace(text string, repl rune) string {
	return w.Filter.Replace(text, repl)
}
