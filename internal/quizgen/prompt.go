// Package quizgen holds the pure steps of question generation: building the
// prompt, recovering question candidates from model output and filtering
// them down to well-formed multiple-choice questions.
package quizgen

import "fmt"

// ExamSubject names the certification the reference material belongs to.
const ExamSubject = "iPAS資訊安全檢定"

const promptTemplate = `請根據以下%s的內容，生成%d道題目，主題為「%s」。

---
%s
---

每道題目需要包含以下部分：
- 題目內容 (content)
- 四個選項 (options)，必須是恰好包含四個字串的JSON陣列，例如：["選項一", "選項二", "選項三", "選項四"]
- 正確答案 (answer)，必須是 a、b、c 或 d 其中一個
- 答案解釋 (explanation)
- 題目類別 (category)，必須是「%s」

請只返回一個包含%d個物件的JSON陣列，且key的名稱需與上述英文相符。`

// BuildPrompt composes the generation prompt. referenceText is embedded
// verbatim between the --- delimiters.
func BuildPrompt(category string, count int, referenceText string) string {
	return fmt.Sprintf(promptTemplate, ExamSubject, count, category, referenceText, category, count)
}
