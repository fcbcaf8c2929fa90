package usecase

import "github.com/fadilmartias/interview-quiz/internal/dto"

var fallbackQuestions = []dto.GeneratedQuestion{
	{
		Question:      "What does AI stand for?",
		Options:       []string{"Artificial Intelligence", "Automated Input", "Analog Interface", "Applied Innovation"},
		CorrectAnswer: "Artificial Intelligence",
		Explanation:   "AI stands for Artificial Intelligence, which refers to machines simulating human intelligence.",
	},
	{
		Question:      "Which is a supervised learning algorithm?",
		Options:       []string{"K-Means", "Decision Trees", "PCA", "DBSCAN"},
		CorrectAnswer: "Decision Trees",
		Explanation:   "Decision Trees are used in supervised learning tasks.",
	},
	{
		Question:      "What is the time complexity of binary search on a sorted array?",
		Options:       []string{"O(n)", "O(log n)", "O(n log n)", "O(1)"},
		CorrectAnswer: "O(log n)",
		Explanation:   "Binary search halves the search space on every comparison.",
	},
	{
		Question:      "Which HTTP method is idempotent by definition?",
		Options:       []string{"POST", "PATCH", "PUT", "CONNECT"},
		CorrectAnswer: "PUT",
		Explanation:   "Repeating a PUT with the same body leaves the resource in the same state.",
	},
	{
		Question:      "What does the 'A' in ACID stand for?",
		Options:       []string{"Availability", "Atomicity", "Authorization", "Aggregation"},
		CorrectAnswer: "Atomicity",
		Explanation:   "Atomicity means a transaction is applied entirely or not at all.",
	},
	{
		Question:      "Which data structure follows last-in, first-out order?",
		Options:       []string{"Queue", "Stack", "Heap", "Linked list"},
		CorrectAnswer: "Stack",
		Explanation:   "A stack pops the most recently pushed element first.",
	},
	{
		Question:      "What is the main purpose of a database index?",
		Options:       []string{"Encrypt rows", "Speed up lookups", "Enforce backups", "Compress tables"},
		CorrectAnswer: "Speed up lookups",
		Explanation:   "Indexes let the database find rows without scanning the whole table.",
	},
	{
		Question:      "Which git command records staged changes in the repository history?",
		Options:       []string{"git add", "git push", "git commit", "git fetch"},
		CorrectAnswer: "git commit",
		Explanation:   "git commit creates a new commit from the staged changes.",
	},
	{
		Question:      "What does overfitting mean in machine learning?",
		Options:       []string{"The model is too simple", "The model memorizes training data and generalizes poorly", "The dataset is too large", "Training finished too early"},
		CorrectAnswer: "The model memorizes training data and generalizes poorly",
		Explanation:   "An overfit model fits noise in the training set and performs worse on unseen data.",
	},
	{
		Question:      "Which status code indicates that a requested resource was not found?",
		Options:       []string{"200", "301", "404", "500"},
		CorrectAnswer: "404",
		Explanation:   "404 Not Found means the server has no resource at the requested URL.",
	},
}

// FallbackQuestions returns a copy of the static question set served when
// generation keeps failing.
func FallbackQuestions() []dto.GeneratedQuestion {
	out := make([]dto.GeneratedQuestion, len(fallbackQuestions))
	for i, q := range fallbackQuestions {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}
