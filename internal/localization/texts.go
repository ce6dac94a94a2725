package localization

var texts = map[Language]map[string]string{
	English: {
		"section_default":         "Section %d",
		"slide_default":           "Slide %d",
		"slide_content_default":   "Content for slide '%s'",
		"presentation_topic":      "Presentation on %s",
		"created_with_ai":         "Created with AI",
		"insufficient_table_data": "Not enough table data to build a table for '%s'",
		"slide_render_failed":     "This slide could not be rendered: %s",
		"initializing":            "Initializing...",
		"gen_summary":             "Generating summary and title",
		"gen_sections":            "Generating section titles",
		"processing_section":      "Processing section '%s'",
		"generating_slide":        "Generating slide '%s'",
		"searching_web":           "Searching the web for '%s'",
		"presentation_ready":      "Presentation ready",
		"remaining_time":          "remaining ~%s",
		"seconds":                 "s",
		"minutes":                 "min",
		"hours":                   "h",
		"saved_file":              "Saved to %s",
		"saved_db":                "Stored as presentation #%d",
		"no_saved":                "No saved presentations yet.",
		"saved_presentations":     "Saved presentations",
		"rendered_files":          "Rendered files",
		"no_files":                "No rendered files yet.",
		"correction_applied":      "Correction '%s' applied, %d field(s) changed",
		"correction_noop":         "Correction '%s' made no changes",
		"deleted":                 "Deleted presentation #%d",
		"cleared":                 "Removed all stored presentations",
		"key_valid":               "API key is valid",
		"key_invalid":             "API key was rejected",
		"col_id":                  "ID",
		"col_title":               "Title",
		"col_language":            "Language",
		"col_sections":            "Sections",
		"col_slides":              "Slides",
		"col_updated":             "Updated",
		"col_key":                 "Setting",
		"col_value":               "Value",
		"col_file":                "File",
		"col_size":                "Size",
		"col_metric":              "Metric",
		"analyzing_request":       "Analyzing the request...",
		"applying_correction":     "Applying a '%s' correction",
		"correcting_slide":        "Correcting slide %d/%d: %s",
		"saving_changes":          "Saving changes...",
	},
	Russian: {
		"section_default":         "Раздел %d",
		"slide_default":           "Слайд %d",
		"slide_content_default":   "Содержимое для слайда '%s'",
		"presentation_topic":      "Презентация на тему %s",
		"created_with_ai":         "Создано с помощью ИИ",
		"insufficient_table_data": "Недостаточно данных для таблицы '%s'",
		"slide_render_failed":     "Не удалось отрисовать слайд: %s",
		"initializing":            "Инициализация...",
		"gen_summary":             "Создание описания и заголовка",
		"gen_sections":            "Создание заголовков разделов",
		"processing_section":      "Обработка раздела '%s'",
		"generating_slide":        "Создание слайда '%s'",
		"searching_web":           "Поиск в интернете: '%s'",
		"presentation_ready":      "Презентация готова",
		"remaining_time":          "осталось ~%s",
		"seconds":                 "сек",
		"minutes":                 "мин",
		"hours":                   "ч",
		"saved_file":              "Сохранено в %s",
		"saved_db":                "Сохранено как презентация #%d",
		"no_saved":                "Сохранённых презентаций пока нет.",
		"saved_presentations":     "Сохранённые презентации",
		"rendered_files":          "Готовые файлы",
		"no_files":                "Готовых файлов пока нет.",
		"correction_applied":      "Исправление '%s' применено, изменено полей: %d",
		"correction_noop":         "Исправление '%s' ничего не изменило",
		"deleted":                 "Презентация #%d удалена",
		"cleared":                 "Все сохранённые презентации удалены",
		"key_valid":               "API-ключ действителен",
		"key_invalid":             "API-ключ отклонён",
		"col_id":                  "ID",
		"col_title":               "Название",
		"col_language":            "Язык",
		"col_sections":            "Разделы",
		"col_slides":              "Слайды",
		"col_updated":             "Обновлено",
		"col_key":                 "Параметр",
		"col_value":               "Значение",
		"col_file":                "Файл",
		"col_size":                "Размер",
		"col_metric":              "Метрика",
		"analyzing_request":       "Анализ запроса...",
		"applying_correction":     "Применение исправления типа '%s'",
		"correcting_slide":        "Исправление слайда %d/%d: %s",
		"saving_changes":          "Сохранение изменений...",
	},
}
