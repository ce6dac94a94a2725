package localization

var prompts = map[Language]map[PromptKind]string{
	English: {
		PromptSectionTitles: `
You design structured, engaging presentations. Write {count} section titles for a presentation on "{title}".

Requirements:
- titles build on each other and develop the topic step by step
- active, attention-grabbing wording, 3 to 8 words each
- every title is unique and informative
- avoid generic headings such as "Introduction" or "Conclusion"

Respond only with JSON:
{"titles": ["Title 1", "Title 2", "Title 3"]}`,

		PromptSlideTitles: `
Write {count} UNIQUE slide titles for the section "{section_title}" of the presentation "{presentation_title}".

Requirements:
- reveal the section step by step
- memorable wording, 2 to 7 words each, numbers or questions where they help
- no two titles may start the same way or repeat an idea

Respond only with JSON:
{"titles": ["Unique title 1", "Unique title 2", "Unique title 3"]}`,

		PromptSlideContent: `
Write the content of the slide "{slide_title}" in the section "{section_title}".

Formatting:
- no markdown (no **, *, _ or #)
- put each list item on its own line starting with "• "
- separate blocks of information with a blank line
- 80 to 150 words, complete sentences, nothing repeated from other slides

Tone: professional but accessible, concrete facts and figures, practical advice.
Start with the key idea and finish with a takeaway.

Respond only with JSON:
{"content": "Structured slide content..."}`,

		PromptSummary: `
Write a professional description of a presentation on "{title}".
State what the topic is and why it matters, name the key aspects covered and the practical value for the audience.
Length: 2 to 3 sentences.

Respond only with JSON:
{"summary": "Description..."}`,

		PromptTitleHeader: `
Write a SHORT, memorable headline for the title slide of a presentation on "{topic}".
At most 3 to 4 words, simple language, different from the topic itself.
Examples: "Artificial Intelligence" -> "AI Changes the World", "Finance" -> "Smart Investments".

Respond only with JSON:
{"title": "Short headline", "description": "One short sentence about the topic"}`,

		PromptEnhanceContent: `
Write the content of the slide "{slide_title}" using the reference material below.
Keep only facts relevant to the slide title, rewrite them in your own words and do not invent sources.

Reference material:
{web_content}

Formatting: no markdown, list items on their own lines starting with "• ", 80 to 150 words.

Respond only with JSON:
{"content": "Slide content based on the material..."}`,

		PromptFilename: `
Suggest a short file name (2 to 4 words, Latin letters, words joined with underscores, no extension) for a presentation titled "{title}".

Respond only with JSON:
{"filename": "short_file_name"}`,

		PromptCorrectTitle: `
The user wants to change the presentation title. Current title: "{current_title}"
Request: "{user_request}"

Write a new title that follows the request and sounds professional.

Respond only with JSON:
{"title": "New title"}`,

		PromptCorrectContent: `
The user wants to change the content of the slide "{slide_title}": "{slide_content}"
Request: "{user_request}"

Rules: no markdown, complete sentences, 80 to 100 words, concrete examples, follow the request.

Respond only with JSON:
{"content": "Updated content..."}`,

		PromptCorrectStructure: `
The user wants to change the structure of the presentation "{presentation_title}".
Current sections: {sections_list}
Request: "{user_request}"

Write the new list of section titles, keeping the same number of sections.

Respond only with JSON:
{"sections": ["New section 1", "New section 2", "New section 3"]}`,

		PromptCorrectStyle: `
The user wants this content rewritten in a different style: "{slide_content}"
Request: "{user_request}"

Rules: no markdown, complete sentences, 100 to 250 words, keep the information, adapt the tone.

Respond only with JSON:
{"content": "Content in the new style..."}`,

		PromptCorrectGeneral: `
The user wants changes to the presentation "{presentation_title}".
Description: "{presentation_summary}"
Request: "{user_request}"

Update the title and/or the description so they follow the request.

Respond only with JSON:
{"title": "Updated title", "summary": "Updated description"}`,
	},

	Russian: {
		PromptSectionTitles: `
Ты создаёшь структурированные и увлекательные презентации. Напиши {count} заголовка разделов для презентации на тему "{title}".

Требования:
- заголовки логически связаны и раскрывают тему поэтапно
- активные, привлекающие внимание формулировки, 3-8 слов
- каждый заголовок уникален и информативен
- избегай общих фраз вроде "Введение" и "Заключение"

Отвечай только в формате JSON:
{"titles": ["Заголовок 1", "Заголовок 2", "Заголовок 3"]}`,

		PromptSlideTitles: `
Напиши {count} УНИКАЛЬНЫХ заголовка слайдов для раздела "{section_title}" презентации "{presentation_title}".

Требования:
- раскрывай раздел пошагово
- запоминающиеся формулировки, 2-7 слов, числа или вопросы там, где уместно
- заголовки не должны начинаться одинаково или повторять мысль

Отвечай только в формате JSON:
{"titles": ["Уникальный заголовок 1", "Уникальный заголовок 2", "Уникальный заголовок 3"]}`,

		PromptSlideContent: `
Создай содержимое слайда "{slide_title}" в разделе "{section_title}".

Форматирование:
- без markdown (никаких **, *, _ или #)
- каждый пункт списка с новой строки и с "• " в начале
- блоки информации разделяй пустой строкой
- 80-150 слов, законченные предложения, без повторов с другими слайдами

Тон: профессиональный, но доступный, конкретные факты и цифры, практические советы.
Начни с ключевой мысли и заверши выводом.

Отвечай только в формате JSON:
{"content": "Структурированное содержимое слайда..."}`,

		PromptSummary: `
Напиши профессиональное описание презентации на тему "{title}".
Укажи суть темы и её актуальность, ключевые аспекты и практическую ценность для аудитории.
Объём: 2-3 предложения.

Отвечай только в формате JSON:
{"summary": "Описание..."}`,

		PromptTitleHeader: `
Придумай КРАТКИЙ запоминающийся заголовок для титульного слайда презентации на тему "{topic}".
Не более 3-4 слов, простой язык, заголовок должен отличаться от самой темы.
Примеры: "Искусственный интеллект" -> "ИИ меняет мир", "Финансы" -> "Умные инвестиции".

Отвечай только в формате JSON:
{"title": "Краткий заголовок", "description": "Одно короткое предложение о теме"}`,

		PromptEnhanceContent: `
Создай содержимое слайда "{slide_title}", опираясь на справочный материал ниже.
Оставь только факты, относящиеся к заголовку слайда, перескажи их своими словами и не выдумывай источники.

Справочный материал:
{web_content}

Форматирование: без markdown, пункты списка с новой строки и с "• " в начале, 80-150 слов.

Отвечай только в формате JSON:
{"content": "Содержимое слайда на основе материала..."}`,

		PromptFilename: `
Предложи короткое имя файла (2-4 слова латиницей, слова через подчёркивание, без расширения) для презентации "{title}".

Отвечай только в формате JSON:
{"filename": "short_file_name"}`,

		PromptCorrectTitle: `
Пользователь хочет изменить название презентации. Текущее: "{current_title}"
Запрос: "{user_request}"

Придумай новое название, которое точно отражает запрос и звучит профессионально.

Отвечай только в формате JSON:
{"title": "Новое название"}`,

		PromptCorrectContent: `
Пользователь просит изменить содержимое слайда "{slide_title}": "{slide_content}"
Запрос: "{user_request}"

Правила: без markdown, законченные предложения, 80-100 слов, конкретные примеры, учти запрос.

Отвечай только в формате JSON:
{"content": "Обновлённое содержимое..."}`,

		PromptCorrectStructure: `
Пользователь хочет изменить структуру презентации "{presentation_title}".
Текущие разделы: {sections_list}
Запрос: "{user_request}"

Напиши новый список заголовков разделов, сохранив их количество.

Отвечай только в формате JSON:
{"sections": ["Новый раздел 1", "Новый раздел 2", "Новый раздел 3"]}`,

		PromptCorrectStyle: `
Пользователь просит переписать содержимое в другом стиле: "{slide_content}"
Запрос: "{user_request}"

Правила: без markdown, законченные предложения, 100-250 слов, сохрани информацию и адаптируй тон.

Отвечай только в формате JSON:
{"content": "Содержимое в новом стиле..."}`,

		PromptCorrectGeneral: `
Пользователь просит внести изменения в презентацию "{presentation_title}".
Описание: "{presentation_summary}"
Запрос: "{user_request}"

Обнови название и/или описание в соответствии с запросом.

Отвечай только в формате JSON:
{"title": "Обновлённое название", "summary": "Обновлённое описание"}`,
	},
}
