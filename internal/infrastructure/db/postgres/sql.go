package postgres

const eventColumnsSQL = `
SELECT e.id, e.campaign_id, e.name, COALESCE(e.description, ''), e.event_type, COALESCE(e.image_url, ''),
       e.start_time, e.end_time,
       e.number_of_volunteers_required, e.is_limit_volunteers, e.is_allow_wait_list,
       c.id, COALESCE(c.name, ''), COALESCE(c.time_zone_id, ''),
       o.id, COALESCE(o.name, ''), COALESCE(o.privacy_policy, ''),
       l.id, COALESCE(l.address1, ''), COALESCE(l.address2, ''), COALESCE(l.city, ''),
       COALESCE(l.state, ''), COALESCE(l.postal_code, ''), COALESCE(l.country, '')
FROM events e
LEFT JOIN campaigns c ON c.id = e.campaign_id
LEFT JOIN organizations o ON o.id = c.managing_organization_id
LEFT JOIN locations l ON l.id = e.location_id
`

const getEventSQL = eventColumnsSQL + `WHERE e.id = $1`

const listCampaignEventsSQL = eventColumnsSQL + `WHERE e.campaign_id = $1
ORDER BY e.start_time ASC, e.id ASC`

const listTasksSQL = `
SELECT id, event_id, name, COALESCE(description, ''), start_time, end_time, number_of_volunteers_required
FROM tasks
WHERE event_id = $1
ORDER BY start_time ASC, id ASC
`

const listTaskSignupsSQL = `
SELECT ts.id, ts.task_id, ts.user_id, ts.status
FROM task_signups ts
JOIN tasks t ON t.id = ts.task_id
WHERE t.event_id = $1 AND ts.status <> 'canceled'
ORDER BY ts.id ASC
`

const listEventSkillsSQL = `
SELECT s.id, s.name, COALESCE(s.description, '')
FROM event_skills es
JOIN skills s ON s.id = es.skill_id
WHERE es.event_id = $1
ORDER BY s.name ASC
`

const listEventSignupsSQL = `
SELECT id, event_id, user_id, signup_time,
       COALESCE(preferred_email, ''), COALESCE(preferred_phone_number, '')
FROM event_signups
WHERE event_id = $1
ORDER BY signup_time ASC, id ASC
`
