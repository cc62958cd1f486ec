package problemgen

const systemPrompt = `你是一位为儿童出数学题的老师。只输出一个严格的 JSON 对象，不要输出任何其他文字、解释或代码块标记。`

const jsonContract = `严格按照 JSON 格式返回：{"question":"<题目>","answer":"<答案>"}。answer 只写最终结果，不要单位。`

var levelPrompts = map[Level]string{
	Easy: `请出一道适合5岁孩子的加法或减法题，所有数字都在20以内，减法结果不能为负数。` + jsonContract,
	Medium: `请出一道20以内的加、减、乘、除运算题。除法必须能整除，乘法的积不超过20，答案是整数。` +
		`题目写成 "a + b = ?"、"a - b = ?"、"a × b = ?" 或 "a ÷ b = ?" 的形式。` + jsonContract,
	Hard: `请出一道100以内的运算题，使用简单分数（如 1/2、1/4）或一位小数。` +
		`分数答案写成最简分数 "n/d"，小数答案保留一位小数。` + jsonContract,
}

// userPrompt returns the instruction for level. Unknown levels get the
// hard prompt.
func userPrompt(level Level) string {
	if p, ok := levelPrompts[level]; ok {
		return p
	}
	return levelPrompts[Hard]
}
