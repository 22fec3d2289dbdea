package services

// Services defined in this package:
// - AuthService: registration, login and token issuing
// - UserService: profile management and learning stats
// - CategoryService: catalog categories
// - CourseService: course catalog and authoring
// - LessonService: lesson authoring and ordering
// - EnrollmentService: enroll, unenroll and per-course progress
// - ProgressService: lesson views, completion and course completion
